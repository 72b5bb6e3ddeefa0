package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Responses

type CheckoutResponse struct {
	OrderID uuid.UUID `json:"orderId"`
}

type TransitionResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Status  Status    `json:"status"`
}

// receiptInfo is everything the notification/receipt side effects need
// about an order, fetched in one query by the event subscriber once a
// lifecycle event arrives.
type receiptInfo struct {
	OrderID       uuid.UUID
	CustomerName  string
	CustomerEmail string
	CreatedAt     time.Time
	TotalAmount   decimal.Decimal
	Items         []*OrderItem
}
