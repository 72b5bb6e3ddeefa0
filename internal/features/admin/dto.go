package admin

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Requests

type UpdateUserRoleRequest struct {
	UserID string `json:"-"`
	Role   string `json:"role" validate:"required,oneof=customer admin"`
}

type UpdateUserStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// Responses

type DashboardStats struct {
	UserCount    int             `json:"user_count"`
	OrderCount   int             `json:"order_count"`
	ProductCount int             `json:"product_count"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ManagedUser is the back office user listing row.
type ManagedUser struct {
	UserID    uuid.UUID `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MonthlySeries is one calendar year of chart data, january first.
type MonthlySeries struct {
	Year   int                 `json:"year"`
	Months [12]decimal.Decimal `json:"months"`
}

type MonthlyCounts struct {
	Year   int     `json:"year"`
	Months [12]int `json:"months"`
}

// CategorySlice is one wedge of the category distribution chart,
// counted over paid order items.
type CategorySlice struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}
