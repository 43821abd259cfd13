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

// OrderRepository handles database operations for orders and their line items
type OrderRepository struct{}

// NewOrderRepository creates a new OrderRepository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Ensure OrderRepository implements OrderRepositoryInterface
var _ OrderRepositoryInterface = (*OrderRepository)(nil)

// queryer is satisfied by both *sql.DB and *sql.Tx
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

const orderSelect = `
	SELECT o.id, o.customer_name, o.customer_phone, o.payment_method, o.notes,
	       o.total_amount, o.status, o.created_at,
	       oi.item_name, oi.price, oi.quantity
	FROM orders o
	LEFT JOIN order_items oi ON oi.order_id = o.id
`

// loadOrders runs an orderSelect query and folds the joined rows back into orders.
// Rows must arrive grouped by order id.
func loadOrders(ctx context.Context, q queryer, query string, args ...interface{}) ([]models.Order, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var (
			id                   int64
			customerName         string
			phone, method, notes sql.NullString
			total                float64
			status               string
			createdAt            time.Time
			itemName             sql.NullString
			itemPrice            sql.NullFloat64
			itemQty              sql.NullInt64
		)
		if err := rows.Scan(&id, &customerName, &phone, &method, &notes, &total, &status, &createdAt,
			&itemName, &itemPrice, &itemQty); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}

		if len(orders) == 0 || orders[len(orders)-1].ID != id {
			orders = append(orders, models.Order{
				ID:            id,
				CustomerName:  customerName,
				CustomerPhone: phone.String,
				PaymentMethod: method.String,
				Notes:         notes.String,
				TotalAmount:   total,
				OrderItems:    []models.OrderItem{},
				CreatedAt:     createdAt.Format(time.RFC3339),
				Status:        status,
			})
		}
		if itemName.Valid {
			current := &orders[len(orders)-1]
			current.OrderItems = append(current.OrderItems, models.OrderItem{
				ItemName: itemName.String,
				Price:    itemPrice.Float64,
				Quantity: int(itemQty.Int64),
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

func getOrder(ctx context.Context, q queryer, id int64) (*models.Order, error) {
	orders, err := loadOrders(ctx, q, orderSelect+` WHERE o.id = $1 ORDER BY oi.position`, id)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, ErrOrderNotFound
	}
	return &orders[0], nil
}

// lockPendingOrder locks the order row and checks it can still be changed
func lockPendingOrder(ctx context.Context, tx *sql.Tx, id int64) (float64, error) {
	var status string
	var total float64
	err := tx.QueryRowContext(ctx, `SELECT status, total_amount FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&status, &total)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrOrderNotFound
		}
		return 0, fmt.Errorf("failed to fetch order: %w", err)
	}
	if status != models.OrderStatusPending {
		return 0, ErrOrderNotPending
	}
	return total, nil
}

// insertItems stores the priced lines, so each stored price is the rounded
// unit price the order total was computed from.
func insertItems(ctx context.Context, tx *sql.Tx, orderID int64, lines []models.PricingLine) error {
	query := `
		INSERT INTO order_items (order_id, position, item_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`
	for i, line := range lines {
		if _, err := tx.ExecContext(ctx, query, orderID, i, line.ItemName, utils.FromPaise(line.UnitPrice), line.Qty); err != nil {
			return fmt.Errorf("failed to insert order item %d: %w", i, err)
		}
	}
	return nil
}

func nullable(s string) sql.NullString {
	s = strings.TrimSpace(s)
	return sql.NullString{String: s, Valid: s != ""}
}

// Create creates a pending order with its line items in a single transaction.
// The total is recomputed from the items; the client-supplied total is ignored.
func (r *OrderRepository) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	log.Printf("🧾 CreateOrder: customer=%s, items=%d", req.CustomerName, len(req.OrderItems))

	if err := pricing.ValidateItems(req.OrderItems); err != nil {
		return nil, err
	}
	breakdown := pricing.CalculateOrder(req.OrderItems)
	total := utils.FromPaise(breakdown.Total)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ CreateOrder: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var orderID int64
	queryInsert := `
		INSERT INTO orders (customer_name, customer_phone, payment_method, notes, total_amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, queryInsert,
		strings.TrimSpace(req.CustomerName),
		nullable(req.CustomerPhone),
		nullable(req.PaymentMethod),
		nullable(req.Notes),
		total,
		models.OrderStatusPending,
	).Scan(&orderID)
	if err != nil {
		log.Printf("❌ CreateOrder: Error inserting order: %v", err)
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	if err := insertItems(ctx, tx, orderID, breakdown.Lines); err != nil {
		log.Printf("❌ CreateOrder: %v", err)
		return nil, err
	}

	order, err := getOrder(ctx, tx, orderID)
	if err != nil {
		log.Printf("❌ CreateOrder: Error reloading order: %v", err)
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ CreateOrder: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ CreateOrder: Successfully created order id=%d, total=%.2f", order.ID, order.TotalAmount)
	return order, nil
}

// List retrieves orders newest first, optionally filtered by status
func (r *OrderRepository) List(ctx context.Context, status *string) ([]models.Order, error) {
	query := orderSelect
	var args []interface{}
	if status != nil && *status != "" {
		query += ` WHERE o.status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY o.created_at DESC, o.id DESC, oi.position`

	orders, err := loadOrders(ctx, db.DB, query, args...)
	if err != nil {
		log.Printf("❌ ListOrders: Error fetching orders: %v", err)
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}

	log.Printf("✅ ListOrders: Successfully fetched %d orders (status=%v)", len(orders), status)
	return orders, nil
}

// GetByID retrieves an order with its line items
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := getOrder(ctx, db.DB, id)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, err
		}
		log.Printf("❌ GetOrder: Error fetching order id=%d: %v", id, err)
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}
	return order, nil
}

// Update replaces the customer details and the whole item list of a pending order
func (r *OrderRepository) Update(ctx context.Context, id int64, req *models.CreateOrderRequest) (*models.Order, error) {
	log.Printf("✏️ UpdateOrder: id=%d, items=%d", id, len(req.OrderItems))

	if err := pricing.ValidateItems(req.OrderItems); err != nil {
		return nil, err
	}
	breakdown := pricing.CalculateOrder(req.OrderItems)
	total := utils.FromPaise(breakdown.Total)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ UpdateOrder: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockPendingOrder(ctx, tx, id); err != nil {
		log.Printf("❌ UpdateOrder: %v (id=%d)", err, id)
		return nil, err
	}

	queryUpdate := `
		UPDATE orders
		SET customer_name = $1, customer_phone = $2, payment_method = $3, notes = $4,
		    total_amount = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err = tx.ExecContext(ctx, queryUpdate,
		strings.TrimSpace(req.CustomerName),
		nullable(req.CustomerPhone),
		nullable(req.PaymentMethod),
		nullable(req.Notes),
		total,
		id,
	)
	if err != nil {
		log.Printf("❌ UpdateOrder: Error updating order: %v", err)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		log.Printf("❌ UpdateOrder: Error clearing items: %v", err)
		return nil, fmt.Errorf("failed to replace order items: %w", err)
	}
	if err := insertItems(ctx, tx, id, breakdown.Lines); err != nil {
		log.Printf("❌ UpdateOrder: %v", err)
		return nil, err
	}

	order, err := getOrder(ctx, tx, id)
	if err != nil {
		log.Printf("❌ UpdateOrder: Error reloading order: %v", err)
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ UpdateOrder: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ UpdateOrder: Successfully updated order id=%d, total=%.2f", id, order.TotalAmount)
	return order, nil
}

// Delete removes a pending order; paid orders are kept for the sales history
func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	log.Printf("🗑️ DeleteOrder: id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ DeleteOrder: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := lockPendingOrder(ctx, tx, id); err != nil {
		log.Printf("❌ DeleteOrder: %v (id=%d)", err, id)
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		log.Printf("❌ DeleteOrder: Error deleting order: %v", err)
		return fmt.Errorf("failed to delete order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ DeleteOrder: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ DeleteOrder: Successfully deleted order id=%d", id)
	return nil
}

// MarkPaid moves a pending order to paid and records its sale.
// Both writes happen atomically so an order is counted in the sales totals exactly once.
func (r *OrderRepository) MarkPaid(ctx context.Context, id int64) (*models.Order, error) {
	log.Printf("💰 MarkPaid: id=%d", id)

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("❌ MarkPaid: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	total, err := lockPendingOrder(ctx, tx, id)
	if err != nil {
		log.Printf("❌ MarkPaid: %v (id=%d)", err, id)
		return nil, err
	}

	queryUpdate := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, queryUpdate, models.OrderStatusPaid, id); err != nil {
		log.Printf("❌ MarkPaid: Error updating order: %v", err)
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	querySale := `
		INSERT INTO sales (order_id, amount, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := tx.ExecContext(ctx, querySale, id, total, time.Now()); err != nil {
		log.Printf("❌ MarkPaid: Error inserting sale: %v", err)
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}

	order, err := getOrder(ctx, tx, id)
	if err != nil {
		log.Printf("❌ MarkPaid: Error reloading order: %v", err)
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	if err := tx.Commit(); err != nil {
		log.Printf("❌ MarkPaid: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Printf("✅ MarkPaid: Order id=%d paid, sale amount=%.2f", id, total)
	return order, nil
}
