package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Udaypole/Market-System/internal/config"
	"github.com/Udaypole/Market-System/internal/handlers"
	"github.com/Udaypole/Market-System/internal/logger"
	"github.com/Udaypole/Market-System/internal/middleware"
	"github.com/Udaypole/Market-System/internal/models"
	"github.com/Udaypole/Market-System/internal/repositories"
	"github.com/Udaypole/Market-System/internal/services"
	"github.com/Udaypole/Market-System/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	userRepo, categoryRepo, productRepo, err := buildRepositories(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize storage", zap.Error(err))
	}

	// The demo dataset only makes sense for the transient in-memory store;
	// a persistent backend would duplicate it on every restart.
	if cfg.SeedData && cfg.Storage.Driver == config.DriverMemory {
		if err := repositories.Seed(userRepo, categoryRepo, productRepo); err != nil {
			zlog.Fatal("failed to seed data", zap.Error(err))
		}
		zlog.Info("seeded demo dataset")
	}

	var mqClient *rabbitmq.Client
	if cfg.RabbitMQ.Enabled {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
		if err != nil {
			zlog.Fatal("failed to initialize RabbitMQ client", zap.Error(err))
		}
		defer mqClient.Close()

		// Demo consumer: log every catalog event that comes back around.
		err = mqClient.ConsumeCatalogEvents(func(msg amqp.Delivery) error {
			zlog.Info("catalog event received",
				zap.Uint64("deliveryTag", msg.DeliveryTag),
				zap.ByteString("body", msg.Body),
			)
			return nil
		})
		if err != nil {
			zlog.Warn("failed to start catalog event consumer", zap.Error(err))
		}
	}

	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, zlog)
	productService := services.NewProductService(productRepo, categoryRepo, mqClient, zlog)
	categoryService := services.NewCategoryService(categoryRepo, productRepo, mqClient, zlog)
	searchService := services.NewSearchService(productRepo, categoryRepo)

	authHandler := handlers.NewAuthHandler(authService, zlog)
	productHandler := handlers.NewProductHandler(productService, zlog)
	categoryHandler := handlers.NewCategoryHandler(categoryService, zlog)
	searchHandler := handlers.NewSearchHandler(searchService, zlog)

	app := fiber.New()
	app.Use(fiberlogger.New())

	apiV1 := app.Group("/api/v1")

	authRequired := middleware.AuthRequired(authService)
	adminRequired := middleware.AdminRequired()

	authHandler.RegisterRoutes(apiV1, authRequired)
	productHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	categoryHandler.RegisterRoutes(apiV1, authRequired, adminRequired)
	searchHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	zlog.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.Server.Port); err != nil {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("shutting down server")

	if err := app.Shutdown(); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	zlog.Info("server stopped")
}

// buildRepositories wires the storage backend selected by configuration.
// The in-memory store is the default; sqlite and postgres go through GORM.
func buildRepositories(cfg *config.Config, zlog *zap.Logger) (
	repositories.UserRepository,
	repositories.CategoryRepository,
	repositories.ProductRepository,
	error,
) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		var dialector gorm.Dialector
		if cfg.Storage.Driver == config.DriverSQLite {
			dsn := cfg.Storage.DSN
			if dsn == "" {
				dsn = "market.db"
			}
			dialector = sqlite.Open(dsn)
		} else {
			dialector = postgres.Open(cfg.Storage.DSN)
		}

		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}); err != nil {
			return nil, nil, nil, err
		}

		zlog.Info("connected to database", zap.String("driver", cfg.Storage.Driver))
		return repositories.NewGORMUserRepository(db),
			repositories.NewGORMCategoryRepository(db),
			repositories.NewGORMProductRepository(db),
			nil

	default:
		return repositories.NewMemoryUserRepository(),
			repositories.NewMemoryCategoryRepository(),
			repositories.NewMemoryProductRepository(),
			nil
	}
}
