package cart

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a soft reservation against product stock: the product's
// quantity is decremented the moment an item enters the cart and
// restored when it leaves.
type CartItem struct {
	CartItemID uuid.UUID `json:"cart_item_id"`
	UserID     uuid.UUID `json:"-"`
	ProductID  uuid.UUID `json:"product_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
}
