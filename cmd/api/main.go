package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/cochin-traders/trader-api/internal/application/batches"
	"github.com/cochin-traders/trader-api/internal/application/companies"
	"github.com/cochin-traders/trader-api/internal/application/orders"
	"github.com/cochin-traders/trader-api/internal/application/stocks"
	"github.com/cochin-traders/trader-api/internal/application/trader"
	"github.com/cochin-traders/trader-api/internal/infrastructure/notify"
	"github.com/cochin-traders/trader-api/internal/infrastructure/postgres"
	httpRouter "github.com/cochin-traders/trader-api/internal/interfaces/http"
	"github.com/cochin-traders/trader-api/pkg/config"
	"github.com/cochin-traders/trader-api/pkg/logger"
)

// notifier cubre los dos avisos salientes de la API: pedidos y fichajes.
type notifier interface {
	orders.Notifier
	trader.Notifier
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	companyRepo := postgres.NewCompanyRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	punchRepo := postgres.NewPunchRepository(pool)
	catalog := postgres.NewCatalogSource(companyRepo)

	notifyTimeout := time.Duration(cfg.Notify.TimeoutSeconds) * time.Second
	var sender notifier
	switch cfg.Notify.Mode {
	case "webhook":
		sender = notify.NewWebhookNotifier(cfg.Notify.WebhookURL, cfg.Notify.WebhookAPIKey, notifyTimeout)
	case "sendgrid":
		sender = notify.NewEmailNotifier(cfg.Notify.SendGridAPIKey, cfg.Notify.EmailFrom, cfg.Notify.EmailTo)
	default:
		log.Warn().Str("modo", cfg.Notify.Mode).Msg("notificaciones desactivadas")
		sender = notify.NopNotifier{}
	}

	companyUC := companies.NewUseCase(companyRepo)
	batchUC := batches.NewUseCase(companyRepo, batchRepo)
	stockUC := stocks.NewUseCase(companyRepo, batchRepo, catalog)
	orderUC := orders.NewUseCase(batchUC, sender, log, notifyTimeout)
	traderUC := trader.NewUseCase(punchRepo, sender, log, notifyTimeout)

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
		Title:    "Trader API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC: companyUC,
		StockUC:   stockUC,
		BatchUC:   batchUC,
		OrderUC:   orderUC,
		TraderUC:  traderUC,
		APIKey:    cfg.API.Key,
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
