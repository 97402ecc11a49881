package models

// PeriodStatus mirrors domain.PeriodStatus.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodSoftClose PeriodStatus = "SOFT_CLOSE"
	PeriodHardClose PeriodStatus = "HARD_CLOSE"
)

// FinancialPeriod is the financial_periods table row, keyed by (year, month).
type FinancialPeriod struct {
	Year   int
	Month  int
	Status PeriodStatus
	AuditFields
}
