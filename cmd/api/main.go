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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/firmaflow/ledger/internal/application/billing"
	infrapdf "github.com/firmaflow/ledger/internal/infrastructure/pdf"
	"github.com/firmaflow/ledger/internal/infrastructure/postgres"
	httpRouter "github.com/firmaflow/ledger/internal/interfaces/http"
	"github.com/firmaflow/ledger/internal/render"
	"github.com/firmaflow/ledger/pkg/config"
	"github.com/firmaflow/ledger/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("default_template", cfg.Render.DefaultTemplate).
		Int("items_per_page", cfg.Render.ItemsPerPage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	templateRepo := postgres.NewTemplateRepository(pool)
	renderRepo := postgres.NewRenderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	templateUC := billing.NewTemplateUseCase(templateRepo, txRunner, billing.TemplateConfig{
		DefaultTemplate: cfg.Render.DefaultTemplate,
		CacheTTL:        cfg.Render.TemplateCacheTTL,
	}, log.Zerolog())

	composer := render.NewComposer(log.Zerolog(),
		render.WithItemsPerPage(cfg.Render.ItemsPerPage),
		render.WithPageSetup(render.PageSetup{
			Size:         cfg.Render.PageSize,
			MarginPt:     cfg.Render.MarginPt,
			BaseFontSize: cfg.Render.BaseFontSize,
		}),
	)
	pdfUC := billing.NewPDFUseCase(
		composer,
		infrapdf.NewMarotoPDFGenerator(log.Zerolog()),
		templateUC,
		renderRepo,
		infrapdf.NewZipArchiver(),
		billing.RenderDefaults{
			Template:         cfg.Render.DefaultTemplate,
			Accent:           cfg.Render.AccentColor,
			BatchWorkers:     cfg.Render.BatchWorkers,
			BatchMaxInvoices: cfg.Render.BatchMaxInvoices,
		},
		log.Zerolog(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.AccessLog(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "FirmaFlow Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Service:   cfg.App.Name,
		Invoices:  pdfUC,
		Templates: templateUC,
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
