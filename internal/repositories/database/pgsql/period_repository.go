package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/models"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

// PgxPeriodRepository persists financial periods.
type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(base BaseRepository) *PgxPeriodRepository {
	return &PgxPeriodRepository{BaseRepository: base}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const periodColumns = `year, month, status, created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (*domain.FinancialPeriod, error) {
	var m models.FinancialPeriod
	err := row.Scan(&m.Year, &m.Month, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan period")
	}
	period := mapping.ToDomainPeriod(m)
	return &period, nil
}

// FindPeriod returns nil without error for untracked periods; callers
// treat those as OPEN.
func (r *PgxPeriodRepository) FindPeriod(ctx context.Context, year int, month time.Month) (*domain.FinancialPeriod, error) {
	row := r.Pool.QueryRow(ctx,
		`SELECT `+periodColumns+` FROM financial_periods WHERE year = $1 AND month = $2`,
		year, int(month))
	return scanPeriod(row)
}

func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+periodColumns+` FROM financial_periods ORDER BY year, month`)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to list periods")
	}
	defer rows.Close()

	var periods []domain.FinancialPeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read periods")
	}
	return periods, nil
}

// UpsertPeriodStatus writes the new status. The WHERE guard on the
// conflict update makes the one-way ordering hold even under concurrent
// closes: a backward write matches no row and fails.
func (r *PgxPeriodRepository) UpsertPeriodStatus(ctx context.Context, period domain.FinancialPeriod) error {
	m := mapping.ToModelPeriod(period)
	rank := map[models.PeriodStatus]int{
		models.PeriodOpen:      0,
		models.PeriodSoftClose: 1,
		models.PeriodHardClose: 2,
	}

	tag, err := r.Pool.Exec(ctx, `
		INSERT INTO financial_periods (year, month, status, status_rank, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (year, month) DO UPDATE
		SET status = EXCLUDED.status,
		    status_rank = EXCLUDED.status_rank,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by
		WHERE financial_periods.status_rank < EXCLUDED.status_rank`,
		m.Year, m.Month, m.Status, rank[m.Status],
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to upsert period %04d-%02d", period.Year, int(period.Month))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeValidation,
			"period %04d-%02d already at or past %s", period.Year, int(period.Month), period.Status)
	}
	return nil
}

func (r *PgxPeriodRepository) CountUnpostedInPeriod(ctx context.Context, year int, month time.Month) (int, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var count int
	err := r.Pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM journal_entries
		WHERE entry_date >= $1 AND entry_date < $2 AND status <> $3`,
		start, end, models.Posted,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "failed to count unposted entries for %04d-%02d", year, int(month))
	}
	return count, nil
}
