package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// CreateDepositRequest opens and funds a fixed deposit.
type CreateDepositRequest struct {
	CustomerID string          `json:"customerID" binding:"required"`
	Number     string          `json:"number" binding:"required"`
	Principal  decimal.Decimal `json:"principal" binding:"required"`
	AnnualRate decimal.Decimal `json:"annualRate" binding:"required"`
	TermMonths int             `json:"termMonths" binding:"required,min=1"`
	StartDate  time.Time       `json:"startDate" binding:"required"`
	Reference  string          `json:"reference" binding:"required"`
}

// WithdrawDepositRequest pays out a deposit at or after maturity.
type WithdrawDepositRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	Reference string    `json:"reference" binding:"required"`
}

// DepositResponse mirrors a fixed deposit.
type DepositResponse struct {
	DepositID       string          `json:"depositID"`
	CustomerID      string          `json:"customerID"`
	Number          string          `json:"number"`
	Principal       decimal.Decimal `json:"principal"`
	AnnualRate      decimal.Decimal `json:"annualRate"`
	TermMonths      int             `json:"termMonths"`
	StartDate       time.Time       `json:"startDate"`
	MaturityDate    time.Time       `json:"maturityDate"`
	AccruedInterest decimal.Decimal `json:"accruedInterest"`
	Status          string          `json:"status"`
}

func ToDepositResponse(d *domain.FixedDeposit) DepositResponse {
	return DepositResponse{
		DepositID:       d.DepositID,
		CustomerID:      d.CustomerID,
		Number:          d.Number,
		Principal:       d.Principal,
		AnnualRate:      d.AnnualRate,
		TermMonths:      d.TermMonths,
		StartDate:       d.StartDate,
		MaturityDate:    d.MaturityDate,
		AccruedInterest: d.AccruedInterest,
		Status:          string(d.Status),
	}
}

// AccrualRunResponse summarizes one interest-accrual batch run. Failures
// are per deposit; already-accrued deposits are untouched.
type AccrualRunResponse struct {
	Accrued int      `json:"accrued"`
	Matured int      `json:"matured"`
	Failed  []string `json:"failed,omitempty"` // deposit IDs
}
