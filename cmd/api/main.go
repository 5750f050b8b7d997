package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/toner-control-api/internal/application/analytics"
	"github.com/jhoicas/toner-control-api/internal/application/auth"
	"github.com/jhoicas/toner-control-api/internal/application/stock"
	"github.com/jhoicas/toner-control-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/toner-control-api/internal/infrastructure/pdf"
	"github.com/jhoicas/toner-control-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/toner-control-api/internal/interfaces/http"
	"github.com/jhoicas/toner-control-api/pkg/config"
	"github.com/jhoicas/toner-control-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	tonerRepo := postgres.NewTonerRepository(pool)
	printerRepo := postgres.NewPrinterRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	tonerUC := usecase.NewTonerUseCase(tonerRepo)
	printerUC := usecase.NewPrinterUseCase(printerRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	ledgerUC := stock.NewLedgerUseCase(txRunner, movementRepo)
	dashboardUC := analytics.NewDashboardUseCase(tonerRepo, movementRepo)
	reportGen := infrapdf.NewMovementReportGenerator()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Toner Control API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		TonerUC:     tonerUC,
		PrinterUC:   printerUC,
		UserUC:      userUC,
		LedgerUC:    ledgerUC,
		DashboardUC: dashboardUC,
		Report:      reportGen,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
