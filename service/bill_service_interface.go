package service

import (
	"context"

	"foodpoint/models"
)

// BillServiceInterface defines the contract for rendering order bills
type BillServiceInterface interface {
	RenderHTML(order *models.Order) (string, error)
	GeneratePDF(ctx context.Context, orderID int64) ([]byte, error)
}

// Ensure BillService implements BillServiceInterface
var _ BillServiceInterface = (*BillService)(nil)
