package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"bakery/internal/clock"
	"bakery/internal/config"
	"bakery/internal/handlers"
	"bakery/internal/metrics"
	"bakery/internal/middleware"
	"bakery/internal/policy"
	"bakery/internal/repositories"
	"bakery/internal/services"
	"bakery/pkg/logger"
	"bakery/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load(viper.New())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		ServiceName: "bakery-pos",
		Level:       logger.ParseLevel(cfg.LogLevel),
		Format:      cfg.LogFormat,
	})

	// --- Database ---
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("failed to open database")
	}

	// --- RabbitMQ (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue}, log)
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, events will not be published")
		} else {
			defer mqClient.Close()
			publisher = mqClient
			if err := mqClient.ConsumeEvents(auditEvent(log)); err != nil {
				log.Warn().Err(err).Msg("failed to start event consumer")
			}
		}
	}

	// --- Metrics ---
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv, err := newServer(cfg, db, publisher, reg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go srv.clock.Run(ctx)

	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		if err := srv.app.Listen(cfg.AppPort); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()
	log.Info().Msg("shutting down server")

	if err := srv.app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during fiber shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}

// server bundles what main needs to run after wiring.
type server struct {
	app   *fiber.App
	clock *clock.Clock
}

// newServer wires repositories, services and handlers on db. publisher may be nil.
func newServer(cfg *config.Config, db *gorm.DB, publisher services.EventPublisher, reg *prometheus.Registry, log zerolog.Logger) (*server, error) {
	// --- Repositories ---
	catalogRepo := repositories.NewGORMCatalogRepository(db)
	if err := catalogRepo.Migrate(); err != nil {
		return nil, err
	}
	staffRepo := repositories.NewGORMStaffRepository(db)
	if err := staffRepo.Migrate(); err != nil {
		return nil, err
	}
	if cfg.SeedCatalog {
		if err := seedCatalog(catalogRepo); err != nil {
			return nil, err
		}
	}
	openingStock, err := catalogRepo.ListInventory()
	if err != nil {
		return nil, err
	}
	inventoryRepo := repositories.NewMemoryInventoryRepository(openingStock)
	orderRepo := repositories.NewMemoryOrderRepository()
	restockRepo := repositories.NewMemoryRestockRepository()

	// --- Services ---
	catalogService, err := services.NewCatalogService(catalogRepo)
	if err != nil {
		return nil, err
	}
	clk := clock.New(cfg.Location)
	gates := policy.Gates{AlcoholFrom: cfg.AlcoholFrom, EatInUntil: cfg.EatInUntil}
	posMetrics := metrics.NewPOSMetrics(reg)

	inventoryService := services.NewInventoryService(inventoryRepo, catalogService, clk, publisher, posMetrics, log)
	cartService := services.NewCartService(catalogService, inventoryService, clk, gates, posMetrics, log)
	sessionService := services.NewSessionService(clk, gates, log)
	orderService := services.NewOrderService(orderRepo, cartService, inventoryService, clk, publisher, posMetrics, cfg.CheckoutDelay, log)
	restockService := services.NewRestockService(restockRepo, catalogService, inventoryService, clk, publisher, log)
	reportService := services.NewReportService(orderRepo, catalogService, inventoryService, clk)
	authService := services.NewAuthService(staffRepo, cfg.JWTSecret, log)

	// --- Fiber App ---
	app := fiber.New(fiber.Config{AppName: "bakery-pos"})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		events := "disabled"
		if publisher != nil {
			events = "enabled"
		}
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"time":      clk.Now().Format(time.RFC3339),
			"simulated": clk.IsSimulated(),
			"events":    events,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// --- API Routes ---
	apiV1 := app.Group("/api/v1")
	handlers.NewAuthHandler(authService, log).RegisterRoutes(apiV1)

	protected := apiV1.Group("", middleware.AuthRequired(authService, log))
	handlers.NewCatalogHandler(catalogService, log).RegisterRoutes(protected)
	handlers.NewCartHandler(cartService, log).RegisterRoutes(protected)
	handlers.NewSessionHandler(sessionService, clk, log).RegisterRoutes(protected)
	handlers.NewOrderHandler(orderService, sessionService, log).RegisterRoutes(protected)
	handlers.NewInventoryHandler(inventoryService, log).RegisterRoutes(protected)
	handlers.NewRestockHandler(restockService, log).RegisterRoutes(protected)
	handlers.NewReportHandler(reportService, log).RegisterRoutes(protected)

	return &server{app: app, clock: clk}, nil
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	default:
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// auditEvent logs every event read back from the broker.
func auditEvent(log zerolog.Logger) func(rabbitmq.Envelope) error {
	return func(env rabbitmq.Envelope) error {
		log.Info().
			Str("event_id", env.EventID).
			Str("event_type", env.EventType).
			Time("occurred_at", env.OccurredAt).
			RawJSON("payload", env.Payload).
			Msg("event received")
		return nil
	}
}
