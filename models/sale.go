package models

// Sale represents a recorded sale in the database
type Sale struct {
	ID        int64   `json:"id"`
	OrderID   int64   `json:"orderId,omitempty"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"createdAt"`
}

// SaleListResponse represents the response for listing sales in a date range
// Example response:
// {
//   "sales": [
//     {"id": 10, "orderId": 3, "amount": 240, "createdAt": "2026-01-04T10:30:00Z"}
//   ]
// }
type SaleListResponse struct {
	Sales []Sale `json:"sales"`
}

// SalesTrendPoint is the total sold on one calendar day
type SalesTrendPoint struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// CreateSaleRequest records a counter sale that was not rung up as an order
// Example: {"amount": 150}
type CreateSaleRequest struct {
	Amount float64 `json:"amount"`
}
