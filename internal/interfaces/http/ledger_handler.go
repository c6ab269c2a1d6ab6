package http

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
	"github.com/jhoicas/inventory-ledger/internal/application/inventory"
	"github.com/jhoicas/inventory-ledger/internal/domain"
)

// LedgerGenerator puerto del caso de uso de kardex visto desde HTTP.
type LedgerGenerator interface {
	Generate(ctx context.Context, actor *inventory.Actor, q dto.LedgerQuery) (*dto.LedgerReportDTO, error)
}

// LedgerHandler expone el kardex conciliado.
type LedgerHandler struct {
	uc           LedgerGenerator
	log          zerolog.Logger
	exposeErrors bool
	timeout      time.Duration
}

// NewLedgerHandler construye el handler. exposeErrors agrega error/details a los 500
// (solo fuera de producción); timeout acota cada reporte (0 = sin límite propio).
func NewLedgerHandler(uc LedgerGenerator, log zerolog.Logger, exposeErrors bool, timeout time.Duration) *LedgerHandler {
	return &LedgerHandler{uc: uc, log: log, exposeErrors: exposeErrors, timeout: timeout}
}

// Get godoc
// @Summary      Kardex conciliado de una variación en una sucursal
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  int     true   "Producto"
// @Param        variation_id  query  int     true   "Variación"
// @Param        location_id   query  int     true   "Sucursal"
// @Param        start_date    query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        end_date      query  string  false  "YYYY-MM-DD o RFC3339 (incluye todo el día)"
// @Success      200  {object}  dto.APIResponse{data=dto.LedgerReportDTO}
// @Failure      400  {object}  dto.APIResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.APIResponse
// @Failure      404  {object}  dto.APIResponse
// @Failure      500  {object}  dto.APIResponse
// @Router       /api/inventory-ledger [get]
func (h *LedgerHandler) Get(c *fiber.Ctx) error {
	var q dto.LedgerQuery
	if err := c.QueryParser(&q); err != nil {
		return h.writeLedgerError(c, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
	}

	var actor *inventory.Actor
	if userID, businessID := GetUserID(c), GetBusinessID(c); userID != "" && businessID != "" {
		actor = &inventory.Actor{UserID: userID, BusinessID: businessID}
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	report, err := h.uc.Generate(ctx, actor, q)
	if err != nil {
		return h.writeLedgerError(c, err)
	}
	return c.JSON(dto.APIResponse{Success: true, Data: report})
}

// writeLedgerError traduce los errores del kardex a HTTP. Cualquier error no clasificado es 500.
func (h *LedgerHandler) writeLedgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.APIResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.APIResponse{Code: "FORBIDDEN", Message: "sin permiso para consultar el kardex"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.APIResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.APIResponse{Code: "NOT_FOUND", Message: err.Error()})
	}

	h.log.Error().Err(err).Str("request_id", requestID(c)).Msg("kardex: error interno")
	body := dto.APIResponse{Code: "INTERNAL", Message: "error interno al generar el kardex"}
	if h.exposeErrors {
		body.Error = err.Error()
		body.Details = fmt.Sprintf("%T", rootCause(err))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func requestID(c *fiber.Ctx) string {
	s, _ := c.Locals("requestid").(string)
	return s
}
