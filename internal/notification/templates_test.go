package notification

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testEmailData() *OrderEmailData {
	return &OrderEmailData{
		OrderID:      "8f14e45f-ceea-467f-a7f1-9e8cbbab10a3",
		CustomerName: "Ada Lovelace",
		OrderDate:    "June 14, 2025",
		TotalAmount:  "$389.50",
	}
}

func Test_RenderOrderConfirmation(t *testing.T) {
	data := testEmailData()

	subject, body, err := RenderOrderConfirmation(data)
	require.NoError(t, err)
	require.Contains(t, subject, data.OrderID)
	require.Contains(t, body, "Order Confirmed")
	require.Contains(t, body, data.CustomerName)
	require.Contains(t, body, data.TotalAmount)
}

func Test_RenderOrderCompleted(t *testing.T) {
	subject, body, err := RenderOrderCompleted(testEmailData())
	require.NoError(t, err)
	require.Contains(t, subject, "Completed")
	require.Contains(t, body, "Order Completed")
	require.Contains(t, body, "marked as paid")
}

func Test_RenderOrderCancelled(t *testing.T) {
	subject, body, err := RenderOrderCancelled(testEmailData())
	require.NoError(t, err)
	require.Contains(t, subject, "Cancelled")
	require.Contains(t, body, "Order Cancelled")
	require.Contains(t, body, "5-7 business days")
}

func Test_renderOrderEmail_escapesCustomerName(t *testing.T) {
	data := testEmailData()
	data.CustomerName = `<script>alert("x")</script>`

	_, body, err := RenderOrderConfirmation(data)
	require.NoError(t, err)
	require.NotContains(t, body, "<script>")
}
