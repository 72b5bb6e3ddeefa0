package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requests

type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Responses

type CartItemDTO struct {
	CartItemID  uuid.UUID       `json:"id"`
	Quantity    int             `json:"quantity"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImagePath   string          `json:"img_path"`
}
