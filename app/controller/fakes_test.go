package controller

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/repository"
)

const testCreatedAt = "2026-01-04T10:30:00Z"

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeFoodItemRepo struct {
	items  map[int64]*models.FoodItem
	nextID int64
	err    error
}

func newFakeFoodItemRepo() *fakeFoodItemRepo {
	return &fakeFoodItemRepo{items: map[int64]*models.FoodItem{}, nextID: 1}
}

func (f *fakeFoodItemRepo) Create(ctx context.Context, req *models.CreateFoodItemRequest) (*models.FoodItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	item := &models.FoodItem{
		ID:        f.nextID,
		Name:      req.Name,
		Category:  req.Category,
		Price:     req.Price,
		ImageURL:  req.ImageURL,
		CreatedAt: testCreatedAt,
	}
	f.items[item.ID] = item
	f.nextID++
	return item, nil
}

func (f *fakeFoodItemRepo) List(ctx context.Context, category *string) ([]models.FoodItem, error) {
	items := []models.FoodItem{}
	for id := int64(1); id < f.nextID; id++ {
		item, ok := f.items[id]
		if !ok {
			continue
		}
		if category != nil && item.Category != *category {
			continue
		}
		items = append(items, *item)
	}
	return items, nil
}

func (f *fakeFoodItemRepo) GetByID(ctx context.Context, id int64) (*models.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrFoodItemNotFound
	}
	return item, nil
}

func (f *fakeFoodItemRepo) Delete(ctx context.Context, id int64) (*models.FoodItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, repository.ErrFoodItemNotFound
	}
	delete(f.items, id)
	return item, nil
}

type fakeOrderRepo struct {
	orders map[int64]*models.Order
	nextID int64
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[int64]*models.Order{}, nextID: 1}
}

func (f *fakeOrderRepo) build(id int64, req *models.CreateOrderRequest, status string) *models.Order {
	return &models.Order{
		ID:            id,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		TotalAmount:   pricing.OrderTotal(req.OrderItems),
		OrderItems:    req.OrderItems,
		CreatedAt:     testCreatedAt,
		Status:        status,
	}
}

func (f *fakeOrderRepo) pending(id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, fmt.Errorf("order id=%d: %w", id, repository.ErrOrderNotFound)
	}
	if order.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("order id=%d: %w", id, repository.ErrOrderNotPending)
	}
	return order, nil
}

func (f *fakeOrderRepo) Create(ctx context.Context, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := pricing.ValidateItems(req.OrderItems); err != nil {
		return nil, err
	}
	order := f.build(f.nextID, req, models.OrderStatusPending)
	f.orders[order.ID] = order
	f.nextID++
	return order, nil
}

func (f *fakeOrderRepo) List(ctx context.Context, status *string) ([]models.Order, error) {
	orders := []models.Order{}
	for id := f.nextID - 1; id >= 1; id-- {
		order, ok := f.orders[id]
		if !ok || (status != nil && order.Status != *status) {
			continue
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	return order, nil
}

func (f *fakeOrderRepo) Update(ctx context.Context, id int64, req *models.CreateOrderRequest) (*models.Order, error) {
	if err := pricing.ValidateItems(req.OrderItems); err != nil {
		return nil, err
	}
	if _, err := f.pending(id); err != nil {
		return nil, err
	}
	order := f.build(id, req, models.OrderStatusPending)
	f.orders[id] = order
	return order, nil
}

func (f *fakeOrderRepo) Delete(ctx context.Context, id int64) error {
	if _, err := f.pending(id); err != nil {
		return err
	}
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) MarkPaid(ctx context.Context, id int64) (*models.Order, error) {
	order, err := f.pending(id)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusPaid
	return order, nil
}

type fakeSalesRepo struct {
	sum        float64
	sales      []models.Sale
	trend      []models.SalesTrendPoint
	lastLimit  int
	lastStart  *time.Time
	lastEnd    *time.Time
	lastAmount float64
}

func (f *fakeSalesRepo) Add(ctx context.Context, amount float64) (*models.Sale, error) {
	f.lastAmount = amount
	return &models.Sale{ID: 42, Amount: amount, CreatedAt: testCreatedAt}, nil
}

func (f *fakeSalesRepo) SumBetween(ctx context.Context, start, end time.Time) (float64, error) {
	return f.sum, nil
}

func (f *fakeSalesRepo) SumAll(ctx context.Context) (float64, error) {
	return f.sum * 10, nil
}

func (f *fakeSalesRepo) Recent(ctx context.Context, limit int) ([]models.Sale, error) {
	f.lastLimit = limit
	return f.sales, nil
}

func (f *fakeSalesRepo) List(ctx context.Context, start, end *time.Time) ([]models.Sale, error) {
	f.lastStart, f.lastEnd = start, end
	return f.sales, nil
}

func (f *fakeSalesRepo) Trend(ctx context.Context, since time.Time, loc *time.Location) ([]models.SalesTrendPoint, error) {
	return f.trend, nil
}

type fakeBills struct {
	pdfErr error
}

func (f *fakeBills) RenderHTML(order *models.Order) (string, error) {
	return fmt.Sprintf("<html><body>Bill #%d</body></html>", order.ID), nil
}

func (f *fakeBills) GeneratePDF(ctx context.Context, orderID int64) ([]byte, error) {
	if f.pdfErr != nil {
		return nil, f.pdfErr
	}
	return []byte("%PDF-1.4 fake"), nil
}

type fakeDrive struct {
	data []byte
	name string
	err  error
}

func (f *fakeDrive) DownloadImage(ctx context.Context, fileID string) ([]byte, string, error) {
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, f.name, nil
}
