package models

import "strings"

// Order statuses
const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

// PaymentMethods lists the payment methods offered at the counter
var PaymentMethods = []string{"cash", "card", "UPI", "wallet"}

// OrderItem represents a line item of an order
type OrderItem struct {
	ItemName string  `json:"itemName"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Order represents an order in the database with its line items
// Example response:
// {
//   "id": 7,
//   "customerName": "Ravi",
//   "customerPhone": "9876543210",
//   "paymentMethod": "UPI",
//   "notes": "less spicy",
//   "totalAmount": 240,
//   "orderItems": [
//     {"itemName": "Masala Dosa", "price": 80, "quantity": 2},
//     {"itemName": "Filter Coffee", "price": 40, "quantity": 2}
//   ],
//   "createdAt": "2026-01-04T10:30:00Z",
//   "status": "pending"
// }
type Order struct {
	ID            int64       `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes"`
	TotalAmount   float64     `json:"totalAmount"`
	OrderItems    []OrderItem `json:"orderItems"`
	CreatedAt     string      `json:"createdAt"`
	Status        string      `json:"status"`
}

// CreateOrderRequest represents the request body for creating or updating an order.
// totalAmount is accepted for compatibility but always recomputed from orderItems.
// Example: {"customerName": "Ravi", "customerPhone": "9876543210", "paymentMethod": "cash",
//   "notes": "", "totalAmount": 160, "orderItems": [{"itemName": "Masala Dosa", "price": 80, "quantity": 2}]}
type CreateOrderRequest struct {
	CustomerName  string      `json:"customerName"`
	CustomerPhone string      `json:"customerPhone"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes"`
	TotalAmount   float64     `json:"totalAmount"`
	OrderItems    []OrderItem `json:"orderItems"`
}

// CanonicalPaymentMethod matches a payment method case-insensitively and
// returns its canonical spelling ("upi" -> "UPI"). An empty method is allowed.
func CanonicalPaymentMethod(method string) (string, bool) {
	method = strings.TrimSpace(method)
	if method == "" {
		return "", true
	}
	for _, m := range PaymentMethods {
		if strings.EqualFold(m, method) {
			return m, true
		}
	}
	return "", false
}
