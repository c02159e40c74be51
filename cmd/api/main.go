package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/gstbooks-api/internal/application/analytics"
	"github.com/jhoicas/gstbooks-api/internal/application/appstate"
	"github.com/jhoicas/gstbooks-api/internal/application/billing"
	"github.com/jhoicas/gstbooks-api/internal/application/inventory"
	"github.com/jhoicas/gstbooks-api/internal/domain/repository"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/bff"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/metrics"
	"github.com/jhoicas/gstbooks-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/gstbooks-api/internal/interfaces/http"
	"github.com/jhoicas/gstbooks-api/pkg/config"
	"github.com/jhoicas/gstbooks-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("dashboard_source", cfg.Dashboard.Source).
		Msg("iniciando aplicación")

	state, err := appstate.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("perfil del negocio")
	}
	if state.Business.StateCode == "" {
		log.Warn().Msg("sin BUSINESS_STATE_CODE ni BUSINESS_GSTIN: todas las facturas se calcularán como intraestatales")
	}

	m := metrics.New(cfg.App.Name)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	partyRepo := postgres.NewPartyRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Fuente del tablero: repositorios propios o el BFF de contabilidad.
	var dashboardSource repository.DashboardSource = postgres.NewDashboardRepository(pool)
	if cfg.Dashboard.Source == config.DashboardSourceBFF {
		dashboardSource = bff.New(cfg.Upstream, &http.Client{Timeout: cfg.Upstream.Timeout}, log, m)
	}

	invoiceUC := billing.NewInvoiceUseCase(txRunner, invoiceRepo, partyRepo, itemRepo, state, m, log)
	paymentUC := billing.NewPaymentUseCase(txRunner, paymentRepo, state, m, log)
	partyUC := billing.NewPartyUseCase(partyRepo, state)
	itemUC := inventory.NewItemUseCase(itemRepo, state)
	dashboardUC := appanalytics.NewDashboardUseCase(dashboardSource, cfg.Dashboard.Source, state, m, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "GSTBooks API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "dashboard_source": cfg.Dashboard.Source})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Invoices:  invoiceUC,
		Payments:  paymentUC,
		Parties:   partyUC,
		Items:     itemUC,
		Dashboard: dashboardUC,
		Pager:     state,
		Metrics:   m,
		Logger:    log,
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
