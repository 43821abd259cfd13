package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"foodpoint/app/controller"
	"foodpoint/app/middleware"
	"foodpoint/app/router"
	"foodpoint/db"
	"foodpoint/repository"
	"foodpoint/service"
)

// Dependencies are the collaborators the HTTP handler is built from
type Dependencies struct {
	FoodItems repository.FoodItemRepositoryInterface
	Orders    repository.OrderRepositoryInterface
	Sales     repository.SalesRepositoryInterface
	Drive     service.DriveServiceInterface // optional
}

// Initialize initializes the application and returns its HTTP handler.
// The database stays open until db.CloseDB is called.
func Initialize(ctx context.Context, cfg *Config) (http.Handler, error) {
	// Initialize database connection
	if err := db.InitDB(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := db.Migrate(ctx, db.DB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	deps := &Dependencies{
		FoodItems: repository.NewFoodItemRepository(),
		Orders:    repository.NewOrderRepository(),
		Sales:     repository.NewSalesRepository(),
	}

	// Drive import is optional
	if cfg.CredentialsPath != "" {
		driveService, err := service.NewDriveService(ctx, cfg.CredentialsPath)
		if err != nil {
			return nil, err
		}
		deps.Drive = driveService
		log.Printf("✅ Google Drive image import enabled")
	} else {
		log.Printf("⚠️ GOOGLE_APPLICATION_CREDENTIALS not set, Drive image import disabled")
	}

	return NewHandler(ctx, cfg, deps)
}

// NewHandler wires services, controllers, routes and middleware.
// Background work started here stops when ctx is done.
func NewHandler(ctx context.Context, cfg *Config, deps *Dependencies) (http.Handler, error) {
	images, err := service.NewImageStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	billService := service.NewBillService(cfg.RestaurantName, cfg.BaseURL, cfg.Location)
	salesService := service.NewSalesService(deps.Sales, cfg.Location)

	// Create controllers
	controllers := &router.Controllers{
		FoodItem: controller.NewFoodItemController(deps.FoodItems, images, deps.Drive),
		Order:    controller.NewOrderController(deps.Orders, billService),
		Sales:    controller.NewSalesController(salesService),
		Upload:   controller.NewUploadController(images),
	}

	mux := http.NewServeMux()
	router.SetupRoutes(mux, controllers)

	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiter.StartCleanup(time.Minute, ctx.Done())
	cors := middleware.NewCORSMiddleware(cfg.CORSOrigins)

	var handler http.Handler = mux
	handler = limiter.Handler(handler)
	handler = cors.Handler(handler)
	handler = middleware.Metrics(handler)
	return handler, nil
}
