package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/toner-control-api/internal/application/analytics"
	"github.com/jhoicas/toner-control-api/internal/application/auth"
	"github.com/jhoicas/toner-control-api/internal/application/stock"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	"github.com/jhoicas/toner-control-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TonerUC     *usecase.TonerUseCase
	PrinterUC   *usecase.PrinterUseCase
	UserUC      *usecase.UserUseCase
	LedgerUC    *stock.LedgerUseCase
	DashboardUC *analytics.DashboardUseCase
	Report      ReportGenerator
	JWTSecret   string
}

// Router registra las rutas de la API. Lecturas para cualquier usuario
// autenticado; escrituras de inventario para admin y tecnico; administración
// de usuarios solo para admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	inventoryWriter := RequireRole(entity.RoleAdmin, entity.RoleTecnico)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Toners (protegido; escrituras admin|tecnico)
	toners := protected.Group("/toners")
	tonerHandler := NewTonerHandler(deps.TonerUC)
	stockHandler := NewStockHandler(deps.LedgerUC, deps.Report)
	toners.Get("/", tonerHandler.List)
	toners.Get("/:id", tonerHandler.GetByID)
	toners.Get("/:id/history", stockHandler.TonerHistory)
	toners.Post("/", inventoryWriter, tonerHandler.Create)
	toners.Put("/:id", inventoryWriter, tonerHandler.Update)
	toners.Patch("/:id/toggle-active", inventoryWriter, tonerHandler.ToggleActive)

	// Printers (protegido; escrituras admin|tecnico)
	printers := protected.Group("/printers")
	printerHandler := NewPrinterHandler(deps.PrinterUC)
	printers.Get("/", printerHandler.List)
	printers.Get("/:id", printerHandler.GetByID)
	printers.Post("/", inventoryWriter, printerHandler.Create)
	printers.Put("/:id", inventoryWriter, printerHandler.Update)
	printers.Patch("/:id/toggle-active", inventoryWriter, printerHandler.ToggleActive)

	// Stock ledger (protegido; registrar movimientos admin|tecnico)
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/report.pdf", stockHandler.Report)
	stockGroup.Post("/", inventoryWriter, stockHandler.CreateMovement)

	// Users (perfil propio para todos; administración solo admin)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me/profile", userHandler.Me)
	users.Get("/me/compact", userHandler.MeCompact)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Put("/:id", adminOnly, userHandler.Update)
	users.Patch("/:id/toggle-active", adminOnly, userHandler.ToggleActive)

	// Dashboard (protegido)
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
