package review

import (
	"time"

	"github.com/google/uuid"
)

// Requests

type AddReviewRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// Responses

// ReviewWithAuthor is a product review joined to the reviewer's name.
type ReviewWithAuthor struct {
	ReviewID     uuid.UUID `json:"review_id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ReviewerName string    `json:"reviewer_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// AdminReview is the back office listing row, joined to both the
// product and the reviewer.
type AdminReview struct {
	ReviewID     uuid.UUID `json:"review_id"`
	ProductID    uuid.UUID `json:"product_id"`
	ProductName  string    `json:"product_name"`
	ReviewerName string    `json:"reviewer_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

type ReviewStats struct {
	Count     int     `json:"count"`
	Average   float64 `json:"average"`
	Histogram [5]int  `json:"histogram"`
}

// ReviewableProduct is a product the user bought in a paid order and
// has not reviewed yet.
type ReviewableProduct struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	ImagePath string    `json:"img_path"`
}
