package repositories

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
)

// PeriodRepository is the persistence port for financial periods.
// A period with no row is implicitly OPEN.
type PeriodRepository interface {
	FindPeriod(ctx context.Context, year int, month time.Month) (*domain.FinancialPeriod, error)
	ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error)

	// UpsertPeriodStatus writes the new status; the implementation guards
	// the one-way OPEN -> SOFT_CLOSE -> HARD_CLOSE ordering.
	UpsertPeriodStatus(ctx context.Context, period domain.FinancialPeriod) error

	// CountUnpostedInPeriod counts entries dated inside the period that
	// are still DRAFT or PENDING_APPROVAL.
	CountUnpostedInPeriod(ctx context.Context, year int, month time.Month) (int, error)
}
