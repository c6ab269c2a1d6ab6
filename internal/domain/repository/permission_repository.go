package repository

import "context"

// PermissionRepository consulta los permisos efectivos de un usuario (rol → permisos).
type PermissionRepository interface {
	HasPermission(ctx context.Context, businessID, userID, permission string) (bool, error)
}
