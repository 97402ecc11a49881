package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InterestMethod selects the amortization convention for a loan product.
type InterestMethod string

const (
	ReducingBalance InterestMethod = "REDUCING_BALANCE"
	FlatRate        InterestMethod = "FLAT_RATE"
)

// LoanStatus tracks a loan through its life.
type LoanStatus string

const (
	LoanActive LoanStatus = "ACTIVE"
	LoanClosed LoanStatus = "CLOSED"
)

// Loan is a disbursed loan with its amortization parameters. The schedule
// rows live separately as ScheduleEntry.
type Loan struct {
	LoanID       string          `json:"loanID"`
	CustomerID   string          `json:"customerID"`
	Principal    decimal.Decimal `json:"principal"`
	AnnualRate   decimal.Decimal `json:"annualRate"` // percent, e.g. 24 for 24%
	TenureMonths int             `json:"tenureMonths"`
	Method       InterestMethod  `json:"method"`
	DisbursedOn  time.Time       `json:"disbursedOn"`
	Status       LoanStatus      `json:"status"`
	AuditFields
}
