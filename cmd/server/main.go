package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/casepix/casepix-backend/config"
	"github.com/casepix/casepix-backend/internal/app/controller"
	"github.com/casepix/casepix-backend/internal/app/repository"
	"github.com/casepix/casepix-backend/internal/app/service"
	"github.com/casepix/casepix-backend/internal/db"
	"github.com/casepix/casepix-backend/internal/events"
	"github.com/casepix/casepix-backend/internal/middleware"
	"github.com/casepix/casepix-backend/internal/router"
	"github.com/casepix/casepix-backend/internal/scheduler"
	"github.com/casepix/casepix-backend/internal/scraper"
	"github.com/casepix/casepix-backend/internal/storage"
	"github.com/casepix/casepix-backend/pkg/logger"
	"github.com/casepix/casepix-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting CasePix Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(db.GetDB()); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize Redis (session carts, dashboard cache)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize Redis", err)
	}
	defer redis.Close()

	// Event feed for admin dashboards
	hub := events.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	brandRepo := repository.NewBrandRepository(db.GetDB())
	modelRepo := repository.NewModelRepository(db.GetDB())
	compatRepo := repository.NewCompatibilityRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	contentRepo := repository.NewContentRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(redis.GetClient(), cfg.Cart.SessionTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	catalogService := service.NewCatalogService(brandRepo, modelRepo, compatRepo)
	compatService := service.NewCompatibilityService(compatRepo, modelRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo)
	contentService := service.NewContentService(contentRepo)
	viewService := service.NewProductViewService(productRepo, contentRepo)
	cartService := service.NewCartService(cartRepo, productRepo, compatService, viewService)
	importService := service.NewImportService(brandRepo, modelRepo, scraper.New(cfg.Scraper.Timeout))
	statsService := service.NewStatsService(productRepo, brandRepo, modelRepo, compatRepo, redis.GetClient())

	// S3 storage for catalog imagery
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	brandController := controller.NewBrandController(catalogService, hub)
	modelController := controller.NewModelController(catalogService, compatService, hub)
	compatController := controller.NewCompatibilityController(compatService, hub)
	categoryController := controller.NewCategoryController(categoryService, hub)
	productController := controller.NewProductController(productService, viewService, hub)
	contentController := controller.NewContentController(contentService, hub)
	cartController := controller.NewCartController(cartService)
	uploadController := controller.NewUploadController(s3Storage, cfg.Upload)
	importController := controller.NewImportController(importService, hub)
	dashboardController := controller.NewDashboardController(statsService)
	eventsController := controller.NewEventsController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Stats refresh scheduler
	statsScheduler := scheduler.NewStatsScheduler(statsService)
	if err := statsScheduler.Start(); err != nil {
		logger.Error("Failed to start stats scheduler", err)
	}
	defer statsScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		brandController,
		modelController,
		compatController,
		categoryController,
		productController,
		contentController,
		cartController,
		uploadController,
		importController,
		dashboardController,
		eventsController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
