package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"foodpoint/db"
	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/utils"
)

// SalesRepository handles database operations for sales
type SalesRepository struct{}

// NewSalesRepository creates a new SalesRepository
func NewSalesRepository() *SalesRepository {
	return &SalesRepository{}
}

// Ensure SalesRepository implements SalesRepositoryInterface
var _ SalesRepositoryInterface = (*SalesRepository)(nil)

func scanSales(rows *sql.Rows) ([]models.Sale, error) {
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var sale models.Sale
		var orderID sql.NullInt64
		var createdAt time.Time
		if err := rows.Scan(&sale.ID, &orderID, &sale.Amount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		if orderID.Valid {
			sale.OrderID = orderID.Int64
		}
		sale.CreatedAt = createdAt.Format(time.RFC3339)
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}
	return sales, nil
}

// Add records a sale that is not tied to an order (e.g. a counter sale)
func (r *SalesRepository) Add(ctx context.Context, amount float64) (*models.Sale, error) {
	log.Printf("💰 AddSale: amount=%.2f", amount)

	if err := pricing.ValidateSaleAmount(amount); err != nil {
		return nil, err
	}
	amount = utils.FromPaise(utils.ToPaise(amount))

	query := `
		INSERT INTO sales (amount, created_at)
		VALUES ($1, $2)
		RETURNING id, amount, created_at
	`
	var sale models.Sale
	var createdAt time.Time
	if err := db.DB.QueryRowContext(ctx, query, amount, time.Now()).Scan(&sale.ID, &sale.Amount, &createdAt); err != nil {
		log.Printf("❌ AddSale: Error inserting sale: %v", err)
		return nil, fmt.Errorf("failed to insert sale: %w", err)
	}
	sale.CreatedAt = createdAt.Format(time.RFC3339)

	log.Printf("✅ AddSale: Successfully recorded sale id=%d", sale.ID)
	return &sale, nil
}

// SumBetween sums sale amounts with start <= created_at < end
func (r *SalesRepository) SumBetween(ctx context.Context, start, end time.Time) (float64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM sales WHERE created_at >= $1 AND created_at < $2`

	var total float64
	if err := db.DB.QueryRowContext(ctx, query, start, end).Scan(&total); err != nil {
		log.Printf("❌ SumBetween: Error summing sales: %v", err)
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

// SumAll sums every recorded sale
func (r *SalesRepository) SumAll(ctx context.Context) (float64, error) {
	var total float64
	if err := db.DB.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM sales`).Scan(&total); err != nil {
		log.Printf("❌ SumAll: Error summing sales: %v", err)
		return 0, fmt.Errorf("failed to sum sales: %w", err)
	}
	return total, nil
}

// Recent retrieves the latest sales, newest first
func (r *SalesRepository) Recent(ctx context.Context, limit int) ([]models.Sale, error) {
	query := `
		SELECT id, order_id, amount, created_at
		FROM sales
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`
	rows, err := db.DB.QueryContext(ctx, query, limit)
	if err != nil {
		log.Printf("❌ RecentSales: Error fetching sales: %v", err)
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	sales, err := scanSales(rows)
	if err != nil {
		log.Printf("❌ RecentSales: %v", err)
		return nil, err
	}
	return sales, nil
}

// List retrieves sales with start <= created_at < end, newest first.
// A nil bound leaves that side open.
func (r *SalesRepository) List(ctx context.Context, start, end *time.Time) ([]models.Sale, error) {
	log.Printf("📦 ListSales: Fetching sales (start=%v, end=%v)", start, end)

	query := `
		SELECT id, order_id, amount, created_at
		FROM sales
	`
	var conditions []string
	var args []interface{}

	if start != nil {
		args = append(args, *start)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if end != nil {
		args = append(args, *end)
		conditions = append(conditions, fmt.Sprintf("created_at < $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ ListSales: Error fetching sales: %v", err)
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	sales, err := scanSales(rows)
	if err != nil {
		log.Printf("❌ ListSales: %v", err)
		return nil, err
	}

	log.Printf("✅ ListSales: Successfully fetched %d sales", len(sales))
	return sales, nil
}

// Trend returns the total sold per calendar day in loc since the given instant, newest day first.
// Days are cut in loc rather than in the database session time zone.
func (r *SalesRepository) Trend(ctx context.Context, since time.Time, loc *time.Location) ([]models.SalesTrendPoint, error) {
	if loc == nil {
		loc = time.Local
	}

	query := `
		SELECT created_at, amount
		FROM sales
		WHERE created_at >= $1
		ORDER BY created_at DESC
	`
	rows, err := db.DB.QueryContext(ctx, query, since)
	if err != nil {
		log.Printf("❌ SalesTrend: Error fetching trend: %v", err)
		return nil, fmt.Errorf("failed to fetch sales trend: %w", err)
	}
	defer rows.Close()

	points := []models.SalesTrendPoint{}
	var dayTotals []int64
	for rows.Next() {
		var createdAt time.Time
		var amount float64
		if err := rows.Scan(&createdAt, &amount); err != nil {
			log.Printf("❌ SalesTrend: Error scanning trend row: %v", err)
			return nil, fmt.Errorf("failed to scan sales trend: %w", err)
		}

		// Rows arrive newest first, so each local day is contiguous
		day := createdAt.In(loc).Format("2006-01-02")
		if len(points) == 0 || points[len(points)-1].Date != day {
			points = append(points, models.SalesTrendPoint{Date: day})
			dayTotals = append(dayTotals, 0)
		}
		dayTotals[len(dayTotals)-1] += utils.ToPaise(amount)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales trend: %w", err)
	}

	for i := range points {
		points[i].Amount = utils.FromPaise(dayTotals[i])
	}
	return points, nil
}
