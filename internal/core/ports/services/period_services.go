package services

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
)

// PeriodSvcFacade defines financial period control operations.
type PeriodSvcFacade interface {
	// GetPeriod retrieves the period covering a date. Unknown periods are
	// reported as OPEN.
	GetPeriod(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error)

	// ListPeriods retrieves all explicitly tracked periods.
	ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error)

	// ClosePeriod advances a period to the target status. Transitions are
	// one way; HARD_CLOSE additionally requires no unposted entries dated
	// in the period.
	ClosePeriod(ctx context.Context, year int, month time.Month, target domain.PeriodStatus, actor domain.Actor) (*domain.FinancialPeriod, error)
}
