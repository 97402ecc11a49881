package domain

import (
	"fmt"
	"time"
)

// PeriodStatus is the close state of a calendar month. Transitions are
// strictly one-way: OPEN -> SOFT_CLOSE -> HARD_CLOSE. No reopening.
type PeriodStatus string

const (
	PeriodOpen      PeriodStatus = "OPEN"
	PeriodSoftClose PeriodStatus = "SOFT_CLOSE"
	PeriodHardClose PeriodStatus = "HARD_CLOSE"
)

// rank orders statuses for the one-way transition check.
func (s PeriodStatus) rank() int {
	switch s {
	case PeriodOpen:
		return 0
	case PeriodSoftClose:
		return 1
	case PeriodHardClose:
		return 2
	}
	return -1
}

// CanTransitionTo reports whether moving from s to next is a forward move.
func (s PeriodStatus) CanTransitionTo(next PeriodStatus) bool {
	return next.rank() > s.rank()
}

// FinancialPeriod is one calendar month of the ledger, keyed by (year, month).
type FinancialPeriod struct {
	Year   int          `json:"year"`
	Month  time.Month   `json:"month"`
	Status PeriodStatus `json:"status"`
	AuditFields
}

// PeriodKeyFor returns the (year, month) key for a date.
func PeriodKeyFor(t time.Time) (int, time.Month) {
	return t.Year(), t.Month()
}

// Label renders the period as "2026-03".
func (p FinancialPeriod) Label() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
