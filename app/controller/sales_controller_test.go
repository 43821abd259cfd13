package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodpoint/models"
	"foodpoint/service"
)

func newSalesController() (*SalesController, *fakeSalesRepo) {
	repo := &fakeSalesRepo{
		sum: 1240.5,
		sales: []models.Sale{
			{ID: 2, OrderID: 7, Amount: 200, CreatedAt: testCreatedAt},
			{ID: 1, Amount: 150, CreatedAt: testCreatedAt},
		},
		trend: []models.SalesTrendPoint{{Date: "2026-01-04", Amount: 350}},
	}
	return NewSalesController(service.NewSalesService(repo, time.UTC)), repo
}

func TestSalesTotalsAreBareNumbers(t *testing.T) {
	c, _ := newSalesController()

	tests := []struct {
		handler http.HandlerFunc
		path    string
		want    string
	}{
		{c.TodaySales, "/api/sales/today", "1240.5"},
		{c.MonthlySales, "/api/sales/monthly", "1240.5"},
		{c.TotalSales, "/api/sales/total", "12405"},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		tt.handler(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		require.Equal(t, http.StatusOK, rec.Code, tt.path)
		assert.Equal(t, tt.want, strings.TrimSpace(rec.Body.String()), tt.path)
	}

	rec := httptest.NewRecorder()
	c.TodaySales(rec, httptest.NewRequest(http.MethodPost, "/api/sales/today", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRecentSales(t *testing.T) {
	c, repo := newSalesController()

	rec := httptest.NewRecorder()
	c.RecentSales(rec, httptest.NewRequest(http.MethodGet, "/api/sales/recent", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.RecentSalesLimit, repo.lastLimit)

	var sales []models.Sale
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sales))
	assert.Len(t, sales, 2)

	rec = httptest.NewRecorder()
	c.RecentSales(rec, httptest.NewRequest(http.MethodGet, "/api/sales/recent?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, repo.lastLimit)

	rec = httptest.NewRecorder()
	c.RecentSales(rec, httptest.NewRequest(http.MethodGet, "/api/sales/recent?limit=0", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSalesWithoutFilterIsArray(t *testing.T) {
	c, repo := newSalesController()

	rec := httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodGet, "/api/sales", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.AllSalesLimit, repo.lastLimit)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "["))
}

func TestListSalesWithDateRange(t *testing.T) {
	c, repo := newSalesController()

	rec := httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodGet, "/api/sales?from=2026-01-01&to=2026-01-31", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.lastStart)
	require.NotNil(t, repo.lastEnd)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), *repo.lastStart)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *repo.lastEnd)

	var resp models.SaleListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Sales, 2)

	rec = httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodGet, "/api/sales?from=01-01-2026", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Use YYYY-MM-DD")
}

func TestRecordSale(t *testing.T) {
	c, repo := newSalesController()

	rec := httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(`{"amount": 150}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 150.0, repo.lastAmount)
	assert.JSONEq(t, `{"id": 42, "amount": 150, "createdAt": "2026-01-04T10:30:00Z"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(`{"amount": -5}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(`{"amount": 0.004}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "amount must be at least 0.01")

	rec = httptest.NewRecorder()
	big := `{"amount": 1, "padding": "` + strings.Repeat("x", 2<<20) + `"}`
	c.Sales(rec, httptest.NewRequest(http.MethodPost, "/api/sales", strings.NewReader(big)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c.Sales(rec, httptest.NewRequest(http.MethodDelete, "/api/sales", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSalesTrend(t *testing.T) {
	c, _ := newSalesController()

	rec := httptest.NewRecorder()
	c.SalesTrend(rec, httptest.NewRequest(http.MethodGet, "/api/sales/trend", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"date": "2026-01-04", "amount": 350}]`, rec.Body.String())
}
