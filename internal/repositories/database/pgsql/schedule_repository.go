package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/models"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

const scheduleColumns = `schedule_id, loan_id, installment_no, due_date,
	principal_due, interest_due, principal_paid, interest_paid, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanScheduleRows(rows pgx.Rows) ([]domain.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	for rows.Next() {
		var m models.ScheduleEntry
		err := rows.Scan(
			&m.ScheduleID, &m.LoanID, &m.InstallmentNo, &m.DueDate,
			&m.PrincipalDue, &m.InterestDue, &m.PrincipalPaid, &m.InterestPaid, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan schedule entry")
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read schedule entries")
	}
	return mapping.ToDomainScheduleEntrySlice(entries), nil
}

// PgxScheduleRepository reads and maintains loan schedules. Inserts and
// paid-counter updates happen inside the loan repository's transactions.
type PgxScheduleRepository struct {
	BaseRepository
}

func newPgxScheduleRepository(base BaseRepository) *PgxScheduleRepository {
	return &PgxScheduleRepository{BaseRepository: base}
}

var _ portsrepo.ScheduleRepository = (*PgxScheduleRepository)(nil)

func (r *PgxScheduleRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.ScheduleEntry, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+scheduleColumns+` FROM loan_schedules WHERE loan_id = $1 ORDER BY installment_no`, loanID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query schedule for loan %s", loanID)
	}
	defer rows.Close()
	return scanScheduleRows(rows)
}

// FindOutstandingByLoanID returns unpaid installments oldest-due-first,
// the order the allocator consumes them in.
func (r *PgxScheduleRepository) FindOutstandingByLoanID(ctx context.Context, loanID string) ([]domain.ScheduleEntry, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM loan_schedules
		WHERE loan_id = $1 AND status <> $2
		ORDER BY due_date, installment_no`,
		loanID, models.SchedulePaid)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query outstanding schedule for loan %s", loanID)
	}
	defer rows.Close()
	return scanScheduleRows(rows)
}

// MarkOverdue flips this loan's unpaid installments past due to OVERDUE
// in one statement, so a failure never touches other loans.
func (r *PgxScheduleRepository) MarkOverdue(ctx context.Context, loanID string, asOf time.Time, actorID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE loan_schedules
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE loan_id = $4 AND due_date < $5 AND status IN ($6, $7)`,
		models.ScheduleOverdue, time.Now(), actorID, loanID, asOf,
		models.SchedulePending, models.SchedulePartial,
	)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "failed to mark overdue installments for loan %s", loanID)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxScheduleRepository) ListLoanIDsWithDueBefore(ctx context.Context, asOf time.Time) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT DISTINCT loan_id
		FROM loan_schedules
		WHERE due_date < $1 AND status IN ($2, $3)
		ORDER BY loan_id`,
		asOf, models.SchedulePending, models.SchedulePartial)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to list loans with due installments")
	}
	defer rows.Close()

	var loanIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan loan id")
		}
		loanIDs = append(loanIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read loan ids")
	}
	return loanIDs, nil
}
