package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DepositStatus tracks a fixed deposit through its life.
type DepositStatus string

const (
	DepositActive    DepositStatus = "ACTIVE"
	DepositMatured   DepositStatus = "MATURED"
	DepositWithdrawn DepositStatus = "WITHDRAWN"
)

// FixedDeposit is a term deposit accruing simple monthly interest until
// maturity. AccruedInterest grows only via the accrual batch, each accrual
// posted in its own atomic unit.
type FixedDeposit struct {
	DepositID       string          `json:"depositID"`
	CustomerID      string          `json:"customerID"`
	Number          string          `json:"number"`
	Principal       decimal.Decimal `json:"principal"`
	AnnualRate      decimal.Decimal `json:"annualRate"` // percent
	TermMonths      int             `json:"termMonths"`
	StartDate       time.Time       `json:"startDate"`
	MaturityDate    time.Time       `json:"maturityDate"`
	AccruedInterest decimal.Decimal `json:"accruedInterest"`
	LastAccruedAt   *time.Time      `json:"lastAccruedAt"`
	Status          DepositStatus   `json:"status"`
	AuditFields
}

// MonthlyInterest is one month of simple interest on the principal,
// rounded to 2 decimal places.
func (d FixedDeposit) MonthlyInterest() decimal.Decimal {
	monthly := d.AnnualRate.Div(decimal.NewFromInt(100)).Div(decimal.NewFromInt(12))
	return d.Principal.Mul(monthly).Round(2)
}
