package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
	StatusPaid       Status = "paid"
)

type Order struct {
	OrderID     uuid.UUID       `json:"order_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Status      Status          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	Items       []*OrderItem    `json:"items,omitempty"`
}

// OrderItem is a point-in-time snapshot of a sale: Price is the product
// price at checkout and is never recomputed from the catalog afterwards.
type OrderItem struct {
	OrderItemID uuid.UUID       `json:"order_item_id"`
	OrderID     uuid.UUID       `json:"-"`
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
