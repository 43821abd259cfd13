package repository

import "errors"

var (
	// ErrFoodItemNotFound is returned when no food item has the requested id
	ErrFoodItemNotFound = errors.New("food item not found")
	// ErrOrderNotFound is returned when no order has the requested id
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotPending is returned when an order that is already paid is edited, deleted or paid again
	ErrOrderNotPending = errors.New("order not in pending status")
)
