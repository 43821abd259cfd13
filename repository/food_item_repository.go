package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"foodpoint/db"
	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/utils"
)

// FoodItemRepository handles database operations for food items
type FoodItemRepository struct{}

// NewFoodItemRepository creates a new FoodItemRepository
func NewFoodItemRepository() *FoodItemRepository {
	return &FoodItemRepository{}
}

// Ensure FoodItemRepository implements FoodItemRepositoryInterface
var _ FoodItemRepositoryInterface = (*FoodItemRepository)(nil)

const foodItemColumns = `id, name, category, price, image_url, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFoodItem(row rowScanner) (*models.FoodItem, error) {
	var item models.FoodItem
	var imageURL sql.NullString
	var createdAt time.Time

	if err := row.Scan(&item.ID, &item.Name, &item.Category, &item.Price, &imageURL, &createdAt); err != nil {
		return nil, err
	}
	if imageURL.Valid {
		item.ImageURL = imageURL.String
	}
	item.CreatedAt = createdAt.Format(time.RFC3339)
	return &item, nil
}

// Create inserts a new food item
func (r *FoodItemRepository) Create(ctx context.Context, req *models.CreateFoodItemRequest) (*models.FoodItem, error) {
	log.Printf("🍽️ CreateFoodItem: name=%s, category=%s, price=%.2f", req.Name, req.Category, req.Price)

	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if category == "" {
		return nil, fmt.Errorf("category is required")
	}
	if err := pricing.ValidatePrice(req.Price); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO food_items (name, category, price, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + foodItemColumns

	item, err := scanFoodItem(db.DB.QueryRowContext(ctx, query,
		name,
		category,
		utils.FromPaise(utils.ToPaise(req.Price)),
		sql.NullString{String: req.ImageURL, Valid: req.ImageURL != ""},
	))
	if err != nil {
		log.Printf("❌ CreateFoodItem: Error inserting food item: %v", err)
		return nil, fmt.Errorf("failed to insert food item: %w", err)
	}

	log.Printf("✅ CreateFoodItem: Successfully created food item id=%d", item.ID)
	return item, nil
}

// List retrieves food items in creation order, optionally restricted to one category
func (r *FoodItemRepository) List(ctx context.Context, category *string) ([]models.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items`
	var args []interface{}
	if category != nil && strings.TrimSpace(*category) != "" {
		query += ` WHERE LOWER(category) = LOWER($1)`
		args = append(args, strings.TrimSpace(*category))
	}
	query += ` ORDER BY id`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListFoodItems: Error fetching food items: %v", err)
		return nil, fmt.Errorf("failed to fetch food items: %w", err)
	}
	defer rows.Close()

	items := []models.FoodItem{}
	for rows.Next() {
		item, err := scanFoodItem(rows)
		if err != nil {
			log.Printf("❌ ListFoodItems: Error scanning food item: %v", err)
			return nil, fmt.Errorf("failed to scan food item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		log.Printf("❌ ListFoodItems: Error iterating food items: %v", err)
		return nil, fmt.Errorf("failed to iterate food items: %w", err)
	}

	log.Printf("✅ ListFoodItems: Successfully fetched %d food items", len(items))
	return items, nil
}

// GetByID retrieves a food item by ID
func (r *FoodItemRepository) GetByID(ctx context.Context, id int64) (*models.FoodItem, error) {
	query := `SELECT ` + foodItemColumns + ` FROM food_items WHERE id = $1`

	item, err := scanFoodItem(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFoodItemNotFound
		}
		log.Printf("❌ GetFoodItem: Error fetching food item id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch food item: %w", err)
	}
	return item, nil
}

// Delete removes a food item and returns the deleted row so its image can be cleaned up
func (r *FoodItemRepository) Delete(ctx context.Context, id int64) (*models.FoodItem, error) {
	log.Printf("🗑️ DeleteFoodItem: id=%d", id)

	query := `DELETE FROM food_items WHERE id = $1 RETURNING ` + foodItemColumns

	item, err := scanFoodItem(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("❌ DeleteFoodItem: Food item not found: id=%d", id)
			return nil, ErrFoodItemNotFound
		}
		log.Printf("❌ DeleteFoodItem: Error deleting food item: %v", err)
		return nil, fmt.Errorf("failed to delete food item: %w", err)
	}

	log.Printf("✅ DeleteFoodItem: Successfully deleted food item id=%d", id)
	return item, nil
}
