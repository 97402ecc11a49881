package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedDeposit is the fixed_deposits table row.
type FixedDeposit struct {
	DepositID       string
	CustomerID      string
	Number          string
	Principal       decimal.Decimal
	AnnualRate      decimal.Decimal
	TermMonths      int
	StartDate       time.Time
	MaturityDate    time.Time
	AccruedInterest decimal.Decimal
	LastAccruedAt   *time.Time
	Status          string
	AuditFields
}
