package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"foodpoint/models"
	"foodpoint/utils"
)

// ValidationError reports a line item or order that cannot be priced.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const (
	// MaxPricePaise is the largest unit price a NUMERIC(10,2) column holds
	MaxPricePaise = 99_999_999_99
	// MaxQuantity bounds a single line so line totals stay far from overflow
	MaxQuantity = 1000
	// MaxTotalPaise is the largest order total a NUMERIC(12,2) column holds
	MaxTotalPaise = 9_999_999_999_99
)

func formatAmount(paise int64) string {
	return strconv.FormatFloat(utils.FromPaise(paise), 'f', 2, 64)
}

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ValidatePrice checks that a price is at least one paisa once rounded and fits the price columns.
func ValidatePrice(price float64) error {
	return validateAmount("price", price, MaxPricePaise)
}

// ValidateSaleAmount checks a manually recorded sale amount.
func ValidateSaleAmount(amount float64) error {
	return validateAmount("amount", amount, MaxTotalPaise)
}

func validateAmount(field string, v float64, maxPaise int64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid("%s must be a number", field)
	}
	// Compared before converting so huge values never reach the int64 conversion
	if v >= float64(maxPaise+1)/100 {
		return invalid("%s must be at most %s", field, formatAmount(maxPaise))
	}
	if utils.ToPaise(v) < 1 {
		return invalid("%s must be at least 0.01", field)
	}
	return nil
}

// ValidateItems checks that an order has at least one line and that every line
// has a name, a price of at least one paisa and a quantity between 1 and MaxQuantity.
func ValidateItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return invalid("order must have at least one item")
	}
	for i, item := range items {
		if strings.TrimSpace(item.ItemName) == "" {
			return invalid("orderItems[%d]: itemName is required", i)
		}
		if err := ValidatePrice(item.Price); err != nil {
			return invalid("orderItems[%d]: %s", i, err.Error())
		}
		if item.Quantity < 1 {
			return invalid("orderItems[%d]: quantity must be at least 1", i)
		}
		if item.Quantity > MaxQuantity {
			return invalid("orderItems[%d]: quantity must be at most %d", i, MaxQuantity)
		}
	}
	if total := CalculateOrder(items).Total; total > MaxTotalPaise {
		return invalid("order total must be at most %s", formatAmount(MaxTotalPaise))
	}
	return nil
}

// CalculateOrder prices every line in paise and sums the order total.
// Prices are rounded to whole paise before multiplying so the total is exactly
// the sum of what is printed on the bill.
func CalculateOrder(items []models.OrderItem) *models.PricingBreakdown {
	breakdown := &models.PricingBreakdown{
		Lines: make([]models.PricingLine, 0, len(items)),
	}
	for _, item := range items {
		unit := utils.ToPaise(item.Price)
		lineTotal := unit * int64(item.Quantity)
		breakdown.Lines = append(breakdown.Lines, models.PricingLine{
			ItemName:  strings.TrimSpace(item.ItemName),
			Qty:       item.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		breakdown.Total += lineTotal
	}
	return breakdown
}

// OrderTotal is the order total in rupees.
func OrderTotal(items []models.OrderItem) float64 {
	return utils.FromPaise(CalculateOrder(items).Total)
}
