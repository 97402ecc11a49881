package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// OpenSavingsRequest opens a customer savings account.
type OpenSavingsRequest struct {
	CustomerID string `json:"customerID" binding:"required"`
	Number     string `json:"number" binding:"required"`
}

// SavingsMovementRequest is a deposit or withdrawal against a savings
// account. Reference is the unique receipt number.
type SavingsMovementRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
	Reference string          `json:"reference" binding:"required"`
}

// SavingsResponse mirrors a savings account.
type SavingsResponse struct {
	SavingsID  string          `json:"savingsID"`
	CustomerID string          `json:"customerID"`
	Number     string          `json:"number"`
	Balance    decimal.Decimal `json:"balance"`
	IsActive   bool            `json:"isActive"`
}

func ToSavingsResponse(s *domain.SavingsAccount) SavingsResponse {
	return SavingsResponse{
		SavingsID:  s.SavingsID,
		CustomerID: s.CustomerID,
		Number:     s.Number,
		Balance:    s.Balance,
		IsActive:   s.IsActive,
	}
}
