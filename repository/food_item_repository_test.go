package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodpoint/models"
	"foodpoint/pricing"
)

var foodItemRowColumns = []string{"id", "name", "category", "price", "image_url", "created_at"}

func TestFoodItemCreate(t *testing.T) {
	mock := setupMockDB(t)
	repo := NewFoodItemRepository()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO food_items (name, category, price, image_url)")).
		WithArgs("Masala Dosa", "South Indian", 80.0, "/uploads/abc_masala-dosa.jpg").
		WillReturnRows(sqlmock.NewRows(foodItemRowColumns).
			AddRow(int64(1), "Masala Dosa", "South Indian", 80.0, "/uploads/abc_masala-dosa.jpg", createdAt))

	item, err := repo.Create(context.Background(), &models.CreateFoodItemRequest{
		Name:     " Masala Dosa ",
		Category: "South Indian",
		Price:    80,
		ImageURL: "/uploads/abc_masala-dosa.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "/uploads/abc_masala-dosa.jpg", item.ImageURL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemCreateValidation(t *testing.T) {
	setupMockDB(t)
	repo := NewFoodItemRepository()

	_, err := repo.Create(context.Background(), &models.CreateFoodItemRequest{Name: "Tea", Category: "Drinks"})
	assert.EqualError(t, err, "price must be at least 0.01")

	_, err = repo.Create(context.Background(), &models.CreateFoodItemRequest{Name: "Tea", Category: "Drinks", Price: 0.004})
	var verr *pricing.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = repo.Create(context.Background(), &models.CreateFoodItemRequest{Category: "Drinks", Price: 10})
	assert.EqualError(t, err, "name is required")
}

func TestFoodItemListByCategory(t *testing.T) {
	mock := setupMockDB(t)
	repo := NewFoodItemRepository()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(category) = LOWER($1) ORDER BY id")).
		WithArgs("Drinks").
		WillReturnRows(sqlmock.NewRows(foodItemRowColumns).
			AddRow(int64(2), "Tea", "Drinks", 15.0, nil, createdAt).
			AddRow(int64(3), "Coffee", "Drinks", 25.5, "/uploads/c.jpg", createdAt))

	category := " Drinks "
	items, err := repo.List(context.Background(), &category)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Empty(t, items[0].ImageURL)
	assert.Equal(t, 25.5, items[1].Price)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemDeleteNotFound(t *testing.T) {
	mock := setupMockDB(t)
	repo := NewFoodItemRepository()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM food_items WHERE id = $1")).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(foodItemRowColumns))

	_, err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrFoodItemNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFoodItemDeleteReturnsRow(t *testing.T) {
	mock := setupMockDB(t)
	repo := NewFoodItemRepository()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM food_items WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(foodItemRowColumns).
			AddRow(int64(4), "Idli", "South Indian", 40.0, "/uploads/x_idli.jpg", createdAt))

	item, err := repo.Delete(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/x_idli.jpg", item.ImageURL)
}
