package service

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"foodpoint/models"
	"foodpoint/pricing"
	"foodpoint/utils"
)

//go:embed templates/bill.html
var billTemplateSource string

var billTemplate = template.Must(template.New("bill").Parse(billTemplateSource))

// BillService renders printable bills for orders
type BillService struct {
	restaurant string
	baseURL    string // Base URL the service is reachable on (e.g., "http://localhost:8080")
	location   *time.Location
}

// NewBillService creates a new BillService
func NewBillService(restaurant, baseURL string, location *time.Location) *BillService {
	if restaurant == "" {
		restaurant = "FoodPoint"
	}
	if location == nil {
		location = time.Local
	}
	return &BillService{
		restaurant: restaurant,
		baseURL:    baseURL,
		location:   location,
	}
}

type billLine struct {
	Name   string
	Qty    int
	Rate   string
	Amount string
}

// RenderHTML renders the bill for an order as a standalone HTML page
func (s *BillService) RenderHTML(order *models.Order) (string, error) {
	breakdown := pricing.CalculateOrder(order.OrderItems)

	lines := make([]billLine, 0, len(breakdown.Lines))
	for _, l := range breakdown.Lines {
		lines = append(lines, billLine{
			Name:   l.ItemName,
			Qty:    l.Qty,
			Rate:   utils.FormatINR(l.UnitPrice),
			Amount: utils.FormatINR(l.LineTotal),
		})
	}

	issuedAt := order.CreatedAt
	if t, err := time.Parse(time.RFC3339, order.CreatedAt); err == nil {
		issuedAt = t.In(s.location).Format("02 Jan 2006 15:04")
	}

	data := struct {
		Restaurant string
		Order      *models.Order
		IssuedAt   string
		Lines      []billLine
		Total      string
	}{
		Restaurant: s.restaurant,
		Order:      order,
		IssuedAt:   issuedAt,
		Lines:      lines,
		Total:      utils.FormatINR(breakdown.Total),
	}

	var buf bytes.Buffer
	if err := billTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute bill template: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// GeneratePDF prints the HTML bill of an order to PDF using headless Chrome.
// Chrome loads the bill from this service's own HTML endpoint.
func (s *BillService) GeneratePDF(ctx context.Context, orderID int64) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.NoSandbox) // Required for running in Docker/containers
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/api/orders/%d/bill?format=html", s.baseURL, orderID)

	var pdfBuf []byte
	err := chromedp.Run(chromedpCtx,
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// 80mm thermal roll; the height grows with the number of lines
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				WithPaperWidth(3.15).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
