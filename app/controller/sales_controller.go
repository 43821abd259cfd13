package controller

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/service"
)

const maxRecentLimit = 500

// SalesController handles HTTP requests for the sales dashboard
type SalesController struct {
	service *service.SalesService
}

// NewSalesController creates a new SalesController
func NewSalesController(salesService *service.SalesService) *SalesController {
	return &SalesController{
		service: salesService,
	}
}

// writeAmount writes a bare JSON number, e.g. 1240.5
func (c *SalesController) writeAmount(w http.ResponseWriter, r *http.Request, op string, sum func() (float64, error)) {
	log.Printf("📥 %s: Received %s request to %s", op, r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ %s: Method not allowed: %s", op, r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	amount, err := sum()
	if err != nil {
		log.Printf("❌ %s: Error computing sales: %v", op, err)
		http.Error(w, fmt.Sprintf("Failed to compute sales: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ %s: %.2f", op, amount)
	writeJSON(w, op, http.StatusOK, amount)
}

// TodaySales handles GET /api/sales/today
func (c *SalesController) TodaySales(w http.ResponseWriter, r *http.Request) {
	c.writeAmount(w, r, "TodaySales", func() (float64, error) { return c.service.Today(r.Context()) })
}

// MonthlySales handles GET /api/sales/monthly
func (c *SalesController) MonthlySales(w http.ResponseWriter, r *http.Request) {
	c.writeAmount(w, r, "MonthlySales", func() (float64, error) { return c.service.Monthly(r.Context()) })
}

// TotalSales handles GET /api/sales/total
func (c *SalesController) TotalSales(w http.ResponseWriter, r *http.Request) {
	c.writeAmount(w, r, "TotalSales", func() (float64, error) { return c.service.Total(r.Context()) })
}

// RecentSales handles GET /api/sales/recent?limit=50
// Example response:
// [
//   {"id": 10, "orderId": 3, "amount": 240, "createdAt": "2026-01-04T10:30:00Z"}
// ]
func (c *SalesController) RecentSales(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RecentSales: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ RecentSales: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := service.RecentSalesLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxRecentLimit {
			log.Printf("❌ RecentSales: Invalid limit: %s", v)
			http.Error(w, fmt.Sprintf("limit must be between 1 and %d", maxRecentLimit), http.StatusBadRequest)
			return
		}
		limit = n
	}

	sales, err := c.service.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("❌ RecentSales: Error fetching sales: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch sales: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ RecentSales: Successfully fetched %d sales", len(sales))
	writeJSON(w, "RecentSales", http.StatusOK, sales)
}

// SalesTrend handles GET /api/sales/trend
// Example response:
// [
//   {"date": "2026-01-04", "amount": 5120},
//   {"date": "2026-01-03", "amount": 4380}
// ]
func (c *SalesController) SalesTrend(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SalesTrend: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ SalesTrend: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	points, err := c.service.Trend(r.Context())
	if err != nil {
		log.Printf("❌ SalesTrend: Error fetching trend: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch sales trend: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, "SalesTrend", http.StatusOK, points)
}

// Sales handles /api/sales
// GET without filters returns the latest sales as an array;
// GET ?from=YYYY-MM-DD&to=YYYY-MM-DD returns {"sales": [...]};
// POST {"amount": 150} records a counter sale.
func (c *SalesController) Sales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		c.listSales(w, r)
	case http.MethodPost:
		c.recordSale(w, r)
	default:
		log.Printf("❌ Sales: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (c *SalesController) listSales(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListSales: Received %s request to %s", r.Method, r.URL.Path)

	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")

	if fromStr == "" && toStr == "" {
		sales, err := c.service.Recent(r.Context(), service.AllSalesLimit)
		if err != nil {
			log.Printf("❌ ListSales: Error fetching sales: %v", err)
			http.Error(w, fmt.Sprintf("Failed to fetch sales: %v", err), http.StatusInternalServerError)
			return
		}
		log.Printf("✅ ListSales: Successfully fetched %d sales", len(sales))
		writeJSON(w, "ListSales", http.StatusOK, sales)
		return
	}

	var from, to *string
	if fromStr != "" {
		if _, err := time.Parse("2006-01-02", fromStr); err != nil {
			log.Printf("❌ ListSales: Invalid from date format: %s", fromStr)
			http.Error(w, "Invalid from date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		from = &fromStr
	}
	if toStr != "" {
		if _, err := time.Parse("2006-01-02", toStr); err != nil {
			log.Printf("❌ ListSales: Invalid to date format: %s", toStr)
			http.Error(w, "Invalid to date format. Use YYYY-MM-DD", http.StatusBadRequest)
			return
		}
		to = &toStr
	}

	sales, err := c.service.Between(r.Context(), from, to)
	if err != nil {
		log.Printf("❌ ListSales: Error fetching sales: %v", err)
		http.Error(w, fmt.Sprintf("Failed to fetch sales: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ ListSales: Successfully fetched %d sales", len(sales))
	writeJSON(w, "ListSales", http.StatusOK, models.SaleListResponse{Sales: sales})
}

func (c *SalesController) recordSale(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 RecordSale: Received %s request to %s", r.Method, r.URL.Path)

	var req models.CreateSaleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Printf("❌ RecordSale: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if err := pricing.ValidateSaleAmount(req.Amount); err != nil {
		log.Printf("❌ RecordSale: Invalid amount %.4f: %v", req.Amount, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sale, err := c.service.Record(r.Context(), req.Amount)
	if err != nil {
		log.Printf("❌ RecordSale: Error recording sale: %v", err)
		http.Error(w, fmt.Sprintf("Failed to record sale: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ RecordSale: Recorded sale id=%d", sale.ID)
	writeJSON(w, "RecordSale", http.StatusOK, sale)
}
