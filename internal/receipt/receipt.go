// Package receipt renders order receipts as pdf artifacts in a receipts
// directory, keyed by order id: `order-<id>.pdf` for a freshly placed
// order and `paid-order-<id>.pdf` once payment is confirmed.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

type Line struct {
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type Order struct {
	OrderID       uuid.UUID
	CustomerName  string
	CustomerEmail string
	Date          time.Time
	TotalAmount   decimal.Decimal
	Items         []Line
}

type Renderer struct {
	dir string
}

func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create receipts dir: %w", err)
	}

	return &Renderer{dir: dir}, nil
}

// RenderPending writes the order confirmation receipt and returns its path.
func (r *Renderer) RenderPending(order *Order) (string, error) {
	pdfPath := filepath.Join(
		r.dir,
		fmt.Sprintf("order-%s.pdf", order.OrderID),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// header, #2563eb
	pdf.SetTextColor(37, 99, 235)
	pdf.SetFont("Helvetica", "B", 26)
	pdf.CellFormat(0, 14, "WatchBuy - Premium Watches", "", 1, "C", false, 0, "")

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Order Receipt #%s", order.OrderID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.customerBlock(pdf, order, "Status: Pending")

	pdf.SetTextColor(37, 99, 235)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, "Order Details", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 7, "Product Name", "", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Quantity", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Price", "", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Total", "", 1, "R", false, 0, "")
	r.rule(pdf)

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 12)
	for _, item := range order.Items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

		pdf.CellFormat(80, 7, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, lineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}
	r.rule(pdf)

	pdf.Ln(4)
	pdf.SetTextColor(37, 99, 235)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 9, fmt.Sprintf("Total Amount: %s", order.TotalAmount.StringFixed(2)), "", 1, "R", false, 0, "")

	r.footer(pdf, "Thank you for shopping with WatchBuy!")

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return "", fmt.Errorf("failed to write pending receipt: %w", err)
	}

	return pdfPath, nil
}

// RenderPaid writes the paid receipt and returns its path.
func (r *Renderer) RenderPaid(order *Order) (string, error) {
	pdfPath := filepath.Join(
		r.dir,
		fmt.Sprintf("paid-order-%s.pdf", order.OrderID),
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	// header, #16a34a
	pdf.SetTextColor(22, 163, 74)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 14, "WatchBuy - Premium Watches - Paid Receipt", "", 1, "C", false, 0, "")

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Order #%s - PAID", order.OrderID), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	r.customerBlock(pdf, order, fmt.Sprintf("Date Paid: %s", time.Now().Format("January 2, 2006")))

	pdf.SetTextColor(22, 163, 74)
	pdf.SetFont("Helvetica", "BU", 14)
	pdf.CellFormat(0, 9, "Ordered Items:", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(120, 7, "Product Name", "", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Quantity", "", 1, "R", false, 0, "")
	r.rule(pdf)

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 12)
	for _, item := range order.Items {
		pdf.CellFormat(120, 7, item.Name, "", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, fmt.Sprintf("%d", item.Quantity), "", 1, "R", false, 0, "")
	}
	r.rule(pdf)

	r.footer(pdf, "Thank you for your payment! Your order has been marked as paid.")

	if err := pdf.OutputFileAndClose(pdfPath); err != nil {
		return "", fmt.Errorf("failed to write paid receipt: %w", err)
	}

	return pdfPath, nil
}

func (r *Renderer) customerBlock(pdf *gofpdf.Fpdf, order *Order, extraLine string) {
	pdf.SetTextColor(68, 68, 68)
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Customer: %s", order.CustomerName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Email: %s", order.CustomerEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Date: %s", order.Date.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, extraLine, "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (r *Renderer) rule(pdf *gofpdf.Fpdf) {
	pdf.SetDrawColor(51, 51, 51)
	x, y := pdf.GetXY()
	pageWidth, _ := pdf.GetPageSize()
	pdf.Line(x, y, pageWidth-18, y)
	pdf.Ln(2)
}

func (r *Renderer) footer(pdf *gofpdf.Fpdf, message string) {
	pdf.Ln(8)
	pdf.SetTextColor(128, 128, 128)
	pdf.SetFont("Helvetica", "I", 12)
	pdf.CellFormat(0, 8, message, "", 1, "C", false, 0, "")
}
