package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/inventory-ledger/internal/domain/repository"
)

var _ repository.PermissionRepository = (*PermissionRepo)(nil)

// PermissionRepo resuelve permisos vía users.role → role_permissions.
type PermissionRepo struct {
	q Querier
}

// NewPermissionRepository construye el adaptador de permisos.
func NewPermissionRepository(q Querier) *PermissionRepo {
	return &PermissionRepo{q: q}
}

// HasPermission indica si el usuario activo de la empresa tiene el permiso por su rol.
func (r *PermissionRepo) HasPermission(ctx context.Context, businessID, userID, permission string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM users u
			JOIN role_permissions rp ON rp.role = u.role AND rp.business_id = u.business_id
			WHERE u.id = $1 AND u.business_id = $2 AND u.status = 'active' AND rp.permission = $3
		)`
	var ok bool
	if err := r.q.QueryRow(ctx, query, userID, businessID, permission).Scan(&ok); err != nil {
		return false, fmt.Errorf("has permission: %w", err)
	}
	return ok, nil
}
