package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/inventory-ledger/internal/application/dto"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger             *LedgerHandler
	JWTSecret          string
	JWTIssuer          string
	RateLimitPerMinute int // 0 = sin límite
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(requestid.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	handlers := []fiber.Handler{}
	if deps.RateLimitPerMinute > 0 {
		handlers = append(handlers, ledgerLimiter(deps.RateLimitPerMinute))
	}
	handlers = append(handlers, deps.Ledger.Get)
	protected.Get("/inventory-ledger", handlers...)
}

// ledgerLimiter limita reportes por empresa+usuario.
func ledgerLimiter(perMinute int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return GetBusinessID(c) + ":" + GetUserID(c)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.APIResponse{Code: "RATE_LIMITED", Message: "demasiadas solicitudes de kardex"})
		},
	})
}
