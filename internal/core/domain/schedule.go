package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleStatus is the repayment state of one installment. Paid amounts
// only grow and status only advances; OVERDUE applies to unpaid
// installments past their due date and resolves to PARTIAL/PAID as money
// arrives.
type ScheduleStatus string

const (
	SchedulePending ScheduleStatus = "PENDING"
	SchedulePartial ScheduleStatus = "PARTIAL"
	SchedulePaid    ScheduleStatus = "PAID"
	ScheduleOverdue ScheduleStatus = "OVERDUE"
)

// ScheduleEntry is one installment of a loan's amortization schedule,
// created once at loan creation and mutated only by repayment allocation.
type ScheduleEntry struct {
	ScheduleID    string          `json:"scheduleID"`
	LoanID        string          `json:"loanID"`
	InstallmentNo int             `json:"installmentNo"`
	DueDate       time.Time       `json:"dueDate"`
	PrincipalDue  decimal.Decimal `json:"principalDue"`
	InterestDue   decimal.Decimal `json:"interestDue"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`
	InterestPaid  decimal.Decimal `json:"interestPaid"`
	Status        ScheduleStatus  `json:"status"`
	AuditFields
}

// OutstandingInterest is interest still owed on this installment.
func (s ScheduleEntry) OutstandingInterest() decimal.Decimal {
	return s.InterestDue.Sub(s.InterestPaid)
}

// OutstandingPrincipal is principal still owed on this installment.
func (s ScheduleEntry) OutstandingPrincipal() decimal.Decimal {
	return s.PrincipalDue.Sub(s.PrincipalPaid)
}

// Outstanding is the total still owed on this installment.
func (s ScheduleEntry) Outstanding() decimal.Decimal {
	return s.OutstandingInterest().Add(s.OutstandingPrincipal())
}

// Settled reports whether both principal and interest are fully paid.
func (s ScheduleEntry) Settled() bool {
	return s.PrincipalPaid.GreaterThanOrEqual(s.PrincipalDue) &&
		s.InterestPaid.GreaterThanOrEqual(s.InterestDue)
}
