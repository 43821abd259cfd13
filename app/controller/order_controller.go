package controller

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/repository"
	"foodpoint/service"
)

const ordersPath = "/api/orders/"

// OrderController handles HTTP requests for orders
type OrderController struct {
	repository repository.OrderRepositoryInterface
	bills      service.BillServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(repo repository.OrderRepositoryInterface, bills service.BillServiceInterface) *OrderController {
	return &OrderController{
		repository: repo,
		bills:      bills,
	}
}

// writeOrderError maps repository errors to status codes
func writeOrderError(w http.ResponseWriter, op string, err error) {
	log.Printf("❌ %s: %v", op, err)

	var validationErr *pricing.ValidationError
	switch {
	case errors.Is(err, repository.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrOrderNotPending):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Message, http.StatusBadRequest)
	default:
		http.Error(w, fmt.Sprintf("%s failed: %v", op, err), http.StatusInternalServerError)
	}
}

// decodeOrderRequest reads and normalizes a create/update body
func decodeOrderRequest(w http.ResponseWriter, r *http.Request) (*models.CreateOrderRequest, error) {
	var req models.CreateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return nil, fmt.Errorf("Invalid request body: %v", err)
	}

	method, ok := models.CanonicalPaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("paymentMethod must be one of %s", strings.Join(models.PaymentMethods, ", "))
	}
	req.PaymentMethod = method
	return &req, nil
}

// CreateOrder handles POST /api/orders
// Example request:
// {
//   "customerName": "Ravi",
//   "customerPhone": "9876543210",
//   "paymentMethod": "UPI",
//   "notes": "less spicy",
//   "orderItems": [{"itemName": "Masala Dosa", "price": 80, "quantity": 2}]
// }
// Responds with the stored order (status "pending", totalAmount recomputed).
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateOrder: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, err := decodeOrderRequest(w, r)
	if err != nil {
		log.Printf("❌ CreateOrder: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := c.repository.Create(r.Context(), req)
	if err != nil {
		writeOrderError(w, "CreateOrder", err)
		return
	}

	log.Printf("✅ CreateOrder: Successfully created order id=%d, total=%.2f", order.ID, order.TotalAmount)
	writeJSON(w, "CreateOrder", http.StatusOK, order)
}

// ListOrders handles GET /api/orders?status=pending|paid
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListOrders: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListOrders: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var status *string
	if v := r.URL.Query().Get("status"); v != "" {
		if v != models.OrderStatusPending && v != models.OrderStatusPaid {
			log.Printf("❌ ListOrders: Invalid status: %s", v)
			http.Error(w, "Invalid status. Must be one of: pending, paid", http.StatusBadRequest)
			return
		}
		status = &v
	}

	c.listOrders(w, r, "ListOrders", status)
}

// ListPendingOrders handles GET /api/orders/pending
func (c *OrderController) ListPendingOrders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListPendingOrders: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ ListPendingOrders: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := models.OrderStatusPending
	c.listOrders(w, r, "ListPendingOrders", &status)
}

func (c *OrderController) listOrders(w http.ResponseWriter, r *http.Request, op string, status *string) {
	orders, err := c.repository.List(r.Context(), status)
	if err != nil {
		writeOrderError(w, op, err)
		return
	}

	log.Printf("✅ %s: Successfully fetched %d orders", op, len(orders))
	writeJSON(w, op, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{id}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetOrder: Received %s request to %s", r.Method, r.URL.Path)

	id, ok := parseID(r.URL.Path, ordersPath, "")
	if !ok {
		http.Error(w, "invalid order id parameter", http.StatusBadRequest)
		return
	}

	order, err := c.repository.GetByID(r.Context(), id)
	if err != nil {
		writeOrderError(w, "GetOrder", err)
		return
	}

	writeJSON(w, "GetOrder", http.StatusOK, order)
}

// UpdateOrder handles PUT /api/orders/{id}
// Replaces customer details and the whole item list of a pending order.
func (c *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 UpdateOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		log.Printf("❌ UpdateOrder: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseID(r.URL.Path, ordersPath, "")
	if !ok {
		http.Error(w, "invalid order id parameter", http.StatusBadRequest)
		return
	}

	req, err := decodeOrderRequest(w, r)
	if err != nil {
		log.Printf("❌ UpdateOrder: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, err := c.repository.Update(r.Context(), id, req)
	if err != nil {
		writeOrderError(w, "UpdateOrder", err)
		return
	}

	log.Printf("✅ UpdateOrder: Successfully updated order id=%d", id)
	writeJSON(w, "UpdateOrder", http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/{id}
func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DeleteOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodDelete {
		log.Printf("❌ DeleteOrder: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseID(r.URL.Path, ordersPath, "")
	if !ok {
		http.Error(w, "invalid order id parameter", http.StatusBadRequest)
		return
	}

	if err := c.repository.Delete(r.Context(), id); err != nil {
		writeOrderError(w, "DeleteOrder", err)
		return
	}

	log.Printf("✅ DeleteOrder: Successfully deleted order id=%d", id)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Order deleted successfully"))
}

// MarkPaid handles PUT /api/orders/{id}/payment-done
// Moves the order to "paid" and records its sale.
func (c *OrderController) MarkPaid(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 MarkPaid: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPut {
		log.Printf("❌ MarkPaid: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseID(r.URL.Path, ordersPath, "/payment-done")
	if !ok {
		http.Error(w, "invalid order id parameter", http.StatusBadRequest)
		return
	}

	order, err := c.repository.MarkPaid(r.Context(), id)
	if err != nil {
		writeOrderError(w, "MarkPaid", err)
		return
	}

	log.Printf("✅ MarkPaid: Order id=%d paid, total=%.2f", id, order.TotalAmount)
	writeJSON(w, "MarkPaid", http.StatusOK, order)
}

// GetBill handles GET /api/orders/{id}/bill?format=html|pdf
// html is the default; pdf is printed by headless Chrome from the html version.
func (c *OrderController) GetBill(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetBill: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		log.Printf("❌ GetBill: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, ok := parseID(r.URL.Path, ordersPath, "/bill")
	if !ok {
		http.Error(w, "invalid order id parameter", http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	if format != "html" && format != "pdf" {
		http.Error(w, "Invalid format. Must be 'html' or 'pdf'", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	order, err := c.repository.GetByID(ctx, id)
	if err != nil {
		writeOrderError(w, "GetBill", err)
		return
	}

	if format == "html" {
		html, err := c.bills.RenderHTML(order)
		if err != nil {
			log.Printf("❌ GetBill: Error rendering bill: %v", err)
			http.Error(w, fmt.Sprintf("Failed to render bill: %v", err), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(html))
		return
	}

	pdf, err := c.bills.GeneratePDF(ctx, id)
	if err != nil {
		log.Printf("❌ GetBill: Error generating PDF: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ GetBill: Generated PDF for order id=%d (%d bytes)", id, len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"bill-%d.pdf\"", id))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
