package receipt

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testOrder() *Order {
	return &Order{
		OrderID:       uuid.New(),
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		Date:          time.Date(2025, 6, 14, 10, 30, 0, 0, time.UTC),
		TotalAmount:   decimal.NewFromFloat(389.50),
		Items: []Line{
			{Name: "diver 200m", Quantity: 2, UnitPrice: decimal.NewFromFloat(150.00)},
			{Name: "field watch", Quantity: 1, UnitPrice: decimal.NewFromFloat(89.50)},
		},
	}
}

func Test_Renderer_RenderPending(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	order := testOrder()

	pdfPath, err := r.RenderPending(order)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("order-%s.pdf", order.OrderID), filepath.Base(pdfPath))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func Test_Renderer_RenderPaid(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	order := testOrder()

	pdfPath, err := r.RenderPaid(order)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("paid-order-%s.pdf", order.OrderID), filepath.Base(pdfPath))

	info, err := os.Stat(pdfPath)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func Test_NewRenderer_createsDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "receipts")

	_, err := NewRenderer(dir)
	require.NoError(t, err)
	require.DirExists(t, dir)
}
