package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-conteo/internal/application/auth"
	"github.com/jhoicas/inventario-conteo/internal/application/counting"
	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CountingUC *counting.CountingUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "sessions": deps.CountingUC.ActiveSessions()})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	productHandler := NewProductHandler(deps.CountingUC)
	protected.Get("/products/:code", productHandler.GetByCode)

	counts := protected.Group("/counts")
	countingHandler := NewCountingHandler(deps.CountingUC)
	counts.Get("/", countingHandler.List)
	counts.Post("/", countingHandler.Record)
	counts.Post("/undo", countingHandler.Undo)
	counts.Delete("/", RequireRole(entity.RoleSupervisor), countingHandler.Clear)
	counts.Post("/export", countingHandler.Export)
	counts.Post("/report", countingHandler.Report)
}
