package pricing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodpoint/models"
)

func TestCalculateOrder(t *testing.T) {
	items := []models.OrderItem{
		{ItemName: " Masala Dosa ", Price: 80, Quantity: 2},
		{ItemName: "Filter Coffee", Price: 0.1, Quantity: 3},
		{ItemName: "Vada", Price: 0.2, Quantity: 1},
	}

	b := CalculateOrder(items)
	require.Len(t, b.Lines, 3)
	assert.Equal(t, "Masala Dosa", b.Lines[0].ItemName)
	assert.Equal(t, int64(16000), b.Lines[0].LineTotal)
	assert.Equal(t, int64(30), b.Lines[1].LineTotal)
	assert.Equal(t, int64(16050), b.Total)
	assert.Equal(t, 160.5, OrderTotal(items))
}

func TestCalculateOrderEmpty(t *testing.T) {
	b := CalculateOrder(nil)
	assert.Equal(t, int64(0), b.Total)
	assert.Empty(t, b.Lines)
}

func TestValidateItems(t *testing.T) {
	cases := []struct {
		name  string
		items []models.OrderItem
		msg   string
	}{
		{"empty", nil, "order must have at least one item"},
		{"no name", []models.OrderItem{{ItemName: "  ", Price: 10, Quantity: 1}}, "orderItems[0]: itemName is required"},
		{"zero price", []models.OrderItem{{ItemName: "Tea", Price: 0, Quantity: 1}}, "orderItems[0]: price must be at least 0.01"},
		{"sub-paisa price", []models.OrderItem{{ItemName: "Tea", Price: 0.004, Quantity: 1}}, "orderItems[0]: price must be at least 0.01"},
		{"price too large", []models.OrderItem{{ItemName: "Tea", Price: 100_000_000, Quantity: 1}}, "orderItems[0]: price must be at most 99999999.99"},
		{"total too large", []models.OrderItem{{ItemName: "Thali", Price: 99_999_999, Quantity: 1000}, {ItemName: "Tea", Price: 10, Quantity: 1}}, "order total must be at most 9999999999.99"},
		{"quantity too large", []models.OrderItem{{ItemName: "Tea", Price: 10, Quantity: 2147483647}}, "orderItems[0]: quantity must be at most 1000"},
		{"zero qty", []models.OrderItem{{ItemName: "Tea", Price: 10, Quantity: 1}, {ItemName: "Bun", Price: 5}}, "orderItems[1]: quantity must be at least 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateItems(tc.items)
			require.Error(t, err)
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.msg, err.Error())
		})
	}

	assert.NoError(t, ValidateItems([]models.OrderItem{{ItemName: "Tea", Price: 10, Quantity: 1}}))
	assert.NoError(t, ValidateItems([]models.OrderItem{{ItemName: "Toffee", Price: 0.005, Quantity: MaxQuantity}}))
}

func TestCalculateOrderRoundsUnitPriceFirst(t *testing.T) {
	// 1.005 is stored as 1.00499... so it rounds down to 100 paise
	b := CalculateOrder([]models.OrderItem{{ItemName: "Mint", Price: 1.005, Quantity: 3}})

	require.Len(t, b.Lines, 1)
	assert.Equal(t, int64(100), b.Lines[0].UnitPrice)
	assert.Equal(t, int64(300), b.Lines[0].LineTotal)
	assert.Equal(t, b.Lines[0].LineTotal, b.Total)
}
