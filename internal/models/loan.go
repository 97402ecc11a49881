package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is the loans table row.
type Loan struct {
	LoanID       string
	CustomerID   string
	Principal    decimal.Decimal
	AnnualRate   decimal.Decimal
	TenureMonths int
	Method       string
	DisbursedOn  time.Time
	Status       string
	AuditFields
}
