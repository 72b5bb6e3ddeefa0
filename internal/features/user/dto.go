package user

import (
	"time"

	"github.com/shopspring/decimal"
)

// Requests

type RegisterUserRequest struct {
	FirstName string `json:"first_name" validate:"required,min=2,max=100,noAllRepeatingChars"`
	LastName  string `json:"last_name" validate:"required,min=2,max=100,noAllRepeatingChars"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type LoginUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Responses

type ProfileStatsResponse struct {
	OrderCount  int             `json:"order_count"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	MemberSince time.Time       `json:"member_since"`
}
