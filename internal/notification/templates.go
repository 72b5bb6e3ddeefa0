package notification

import (
	"bytes"
	"fmt"
	"html/template"
)

// OrderEmailData feeds every order lifecycle template.
type OrderEmailData struct {
	OrderID      string
	CustomerName string
	OrderDate    string
	TotalAmount  string
}

const baseStyle = `
  body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; margin: 0; padding: 0; background-color: #f8fafc; }
  .container { max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 16px; overflow: hidden; }
  .header { background: linear-gradient(135deg, #0f172a 0%, #1e293b 100%); color: white; padding: 2rem; text-align: center; }
  .content { padding: 2rem; }
  .status-badge { display: inline-block; color: white; padding: 0.5rem 1rem; border-radius: 50px; font-weight: 600; font-size: 0.9rem; margin-bottom: 1rem; }
  .order-details { background-color: #f8fafc; border-radius: 12px; padding: 1.5rem; margin: 1.5rem 0; }
  .footer { padding: 1.5rem 2rem; color: #64748b; font-size: 0.85rem; text-align: center; }
`

const orderEmailBody = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <style>{{.Style}}</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>WatchBuy</h1>
      <p>Premium Watches</p>
    </div>
    <div class="content">
      <span class="status-badge" style="background: {{.BadgeColor}};">{{.Badge}}</span>
      <p>Hi {{.Data.CustomerName}},</p>
      <p>{{.Lead}}</p>
      <div class="order-details">
        <h3>Order Details</h3>
        <p>Order ID: #{{.Data.OrderID}}</p>
        <p>Order Date: {{.Data.OrderDate}}</p>
        <p>Total Amount: {{.Data.TotalAmount}}</p>
      </div>
      <p>{{.Closing}}</p>
    </div>
    <div class="footer">Thank you for shopping with WatchBuy!</div>
  </div>
</body>
</html>`

var orderEmailTmpl = template.Must(
	template.New("orderEmail").Parse(orderEmailBody),
)

type orderEmailView struct {
	Style      template.CSS
	Badge      string
	BadgeColor template.CSS
	Lead       string
	Closing    string
	Data       *OrderEmailData
}

// RenderOrderConfirmation is the email sent right after checkout.
func RenderOrderConfirmation(data *OrderEmailData) (subject string, htmlBody string, err error) {
	subject = fmt.Sprintf("Order #%s Confirmed - WatchBuy", data.OrderID)
	htmlBody, err = renderOrderEmail(&orderEmailView{
		Badge:      "Order Confirmed",
		BadgeColor: "linear-gradient(135deg, #2563eb 0%, #1d4ed8 100%)",
		Lead:       "We have received your order and it is now pending. You will get another email once your payment is confirmed.",
		Closing:    "A receipt for your order is attached to this email.",
		Data:       data,
	})

	return subject, htmlBody, err
}

// RenderOrderCompleted is the email sent when an order is marked paid.
func RenderOrderCompleted(data *OrderEmailData) (subject string, htmlBody string, err error) {
	subject = fmt.Sprintf("Order #%s Completed - WatchBuy", data.OrderID)
	htmlBody, err = renderOrderEmail(&orderEmailView{
		Badge:      "Order Completed",
		BadgeColor: "linear-gradient(135deg, #10b981 0%, #059669 100%)",
		Lead:       "Your payment is confirmed and your order has been marked as paid.",
		Closing:    "Your paid receipt is attached. We hope to see you again soon!",
		Data:       data,
	})

	return subject, htmlBody, err
}

// RenderOrderCancelled is the email sent when an order is cancelled. No
// payment reversal happens here; the refund timeline is messaging only.
func RenderOrderCancelled(data *OrderEmailData) (subject string, htmlBody string, err error) {
	subject = fmt.Sprintf("Order #%s Cancelled - WatchBuy", data.OrderID)
	htmlBody, err = renderOrderEmail(&orderEmailView{
		Badge:      "Order Cancelled",
		BadgeColor: "linear-gradient(135deg, #ef4444 0%, #dc2626 100%)",
		Lead:       "Your order has been cancelled. If you already paid, any refund will be processed within 5-7 business days.",
		Closing:    "If you did not request this cancellation, please contact our support team.",
		Data:       data,
	})

	return subject, htmlBody, err
}

func renderOrderEmail(view *orderEmailView) (string, error) {
	view.Style = baseStyle

	var buf bytes.Buffer
	if err := orderEmailTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render order email: %w", err)
	}

	return buf.String(), nil
}
