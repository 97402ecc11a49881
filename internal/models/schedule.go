package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleStatus mirrors domain.ScheduleStatus.
type ScheduleStatus string

const (
	SchedulePending ScheduleStatus = "PENDING"
	SchedulePartial ScheduleStatus = "PARTIAL"
	SchedulePaid    ScheduleStatus = "PAID"
	ScheduleOverdue ScheduleStatus = "OVERDUE"
)

// ScheduleEntry is the loan_schedules table row.
type ScheduleEntry struct {
	ScheduleID    string
	LoanID        string
	InstallmentNo int
	DueDate       time.Time
	PrincipalDue  decimal.Decimal
	InterestDue   decimal.Decimal
	PrincipalPaid decimal.Decimal
	InterestPaid  decimal.Decimal
	Status        ScheduleStatus
	AuditFields
}
