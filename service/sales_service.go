package service

import (
	"context"
	"fmt"
	"time"

	"foodpoint/models"
	"foodpoint/repository"
)

const (
	// RecentSalesLimit is how many sales the dashboard chart shows
	RecentSalesLimit = 50
	// AllSalesLimit caps the unfiltered sales list
	AllSalesLimit = 100
	trendDays     = 7
)

// SalesService computes the sales dashboard figures
type SalesService struct {
	repository repository.SalesRepositoryInterface
	location   *time.Location
	now        func() time.Time
}

// NewSalesService creates a new SalesService. Day and month boundaries are
// taken in location (time.Local when nil).
func NewSalesService(repo repository.SalesRepositoryInterface, location *time.Location) *SalesService {
	if location == nil {
		location = time.Local
	}
	return &SalesService{
		repository: repo,
		location:   location,
		now:        time.Now,
	}
}

func (s *SalesService) startOfDay(t time.Time) time.Time {
	t = t.In(s.location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.location)
}

// Today sums the sales since local midnight
func (s *SalesService) Today(ctx context.Context) (float64, error) {
	start := s.startOfDay(s.now())
	return s.repository.SumBetween(ctx, start, start.AddDate(0, 0, 1))
}

// Monthly sums the sales of the current calendar month
func (s *SalesService) Monthly(ctx context.Context) (float64, error) {
	today := s.startOfDay(s.now())
	start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.location)
	return s.repository.SumBetween(ctx, start, start.AddDate(0, 1, 0))
}

// Total sums every sale ever recorded
func (s *SalesService) Total(ctx context.Context) (float64, error) {
	return s.repository.SumAll(ctx)
}

// Recent lists the latest sales, newest first
func (s *SalesService) Recent(ctx context.Context, limit int) ([]models.Sale, error) {
	if limit <= 0 {
		limit = RecentSalesLimit
	}
	return s.repository.Recent(ctx, limit)
}

// Between lists sales between two YYYY-MM-DD dates, both days inclusive.
// Days start at midnight in the configured location.
func (s *SalesService) Between(ctx context.Context, from, to *string) ([]models.Sale, error) {
	var start, end *time.Time
	if from != nil && *from != "" {
		day, err := time.ParseInLocation("2006-01-02", *from, s.location)
		if err != nil {
			return nil, fmt.Errorf("invalid from date format: %w", err)
		}
		start = &day
	}
	if to != nil && *to != "" {
		day, err := time.ParseInLocation("2006-01-02", *to, s.location)
		if err != nil {
			return nil, fmt.Errorf("invalid to date format: %w", err)
		}
		// Up to the start of the following day
		next := day.AddDate(0, 0, 1)
		end = &next
	}
	return s.repository.List(ctx, start, end)
}

// Record stores a sale that was not rung up as an order
func (s *SalesService) Record(ctx context.Context, amount float64) (*models.Sale, error) {
	return s.repository.Add(ctx, amount)
}

// Trend returns the daily totals of the last seven days, today included
func (s *SalesService) Trend(ctx context.Context) ([]models.SalesTrendPoint, error) {
	since := s.startOfDay(s.now()).AddDate(0, 0, -(trendDays - 1))
	return s.repository.Trend(ctx, since, s.location)
}
