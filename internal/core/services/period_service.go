package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/middleware"
)

// periodService implements financial period control. Periods only move
// forward: OPEN -> SOFT_CLOSE -> HARD_CLOSE.
type periodService struct {
	periodRepo portsrepo.PeriodRepository
}

// NewPeriodService creates a new period service.
func NewPeriodService(periodRepo portsrepo.PeriodRepository) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// GetPeriod retrieves the period covering a date. A period with no row
// has never been touched by close control and is reported OPEN.
func (s *periodService) GetPeriod(ctx context.Context, date time.Time) (*domain.FinancialPeriod, error) {
	year, month := domain.PeriodKeyFor(date)
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return &domain.FinancialPeriod{Year: year, Month: month, Status: domain.PeriodOpen}, nil
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	return s.periodRepo.ListPeriods(ctx)
}

// ClosePeriod advances a period to the target status. Backward moves are
// rejected; a HARD_CLOSE additionally requires every entry dated in the
// period to be posted.
func (s *periodService) ClosePeriod(ctx context.Context, year int, month time.Month, target domain.PeriodStatus, actor domain.Actor) (*domain.FinancialPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if target != domain.PeriodSoftClose && target != domain.PeriodHardClose {
		return nil, apperrors.New(apperrors.CodeValidation, "invalid close target %s", target)
	}

	current := domain.PeriodOpen
	existing, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		current = existing.Status
	}
	if !current.CanTransitionTo(target) {
		return nil, apperrors.New(apperrors.CodeValidation,
			"period %04d-%02d cannot move from %s to %s", year, int(month), current, target)
	}

	unposted, err := s.periodRepo.CountUnpostedInPeriod(ctx, year, month)
	if err != nil {
		return nil, err
	}
	if unposted > 0 {
		if target == domain.PeriodHardClose {
			return nil, apperrors.New(apperrors.CodeValidation,
				"period %04d-%02d has %d unposted entries; post or resolve them before hard close", year, int(month), unposted)
		}
		// Soft close still lets the drafts post; surface them so they get
		// resolved before the hard close.
		logger.Warn("Soft-closing period with unposted entries",
			slog.String("period", domain.FinancialPeriod{Year: year, Month: month}.Label()),
			slog.Int("unposted", unposted),
		)
	}

	now := time.Now()
	period := domain.FinancialPeriod{
		Year:   year,
		Month:  month,
		Status: target,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}
	if existing != nil {
		period.CreatedAt = existing.CreatedAt
		period.CreatedBy = existing.CreatedBy
	}

	if err := s.periodRepo.UpsertPeriodStatus(ctx, period); err != nil {
		logger.Error("Failed to close period", slog.String("period", period.Label()), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Period status changed",
		slog.String("period", period.Label()),
		slog.String("from", string(current)),
		slog.String("to", string(target)),
	)
	return &period, nil
}
