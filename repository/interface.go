package repository

import (
	"context"
	"time"

	"foodpoint/models"
)

// FoodItemRepositoryInterface defines the contract for food item repository operations
type FoodItemRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateFoodItemRequest) (*models.FoodItem, error)
	List(ctx context.Context, category *string) ([]models.FoodItem, error)
	GetByID(ctx context.Context, id int64) (*models.FoodItem, error)
	Delete(ctx context.Context, id int64) (*models.FoodItem, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error)
	List(ctx context.Context, status *string) ([]models.Order, error)
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	Update(ctx context.Context, id int64, req *models.CreateOrderRequest) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
	MarkPaid(ctx context.Context, id int64) (*models.Order, error)
}

// SalesRepositoryInterface defines the contract for sales repository operations
type SalesRepositoryInterface interface {
	Add(ctx context.Context, amount float64) (*models.Sale, error)
	SumBetween(ctx context.Context, start, end time.Time) (float64, error)
	SumAll(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]models.Sale, error)
	List(ctx context.Context, start, end *time.Time) ([]models.Sale, error)
	Trend(ctx context.Context, since time.Time, loc *time.Location) ([]models.SalesTrendPoint, error)
}
