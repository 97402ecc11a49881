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
	"github.com/sokofin/corebank/internal/utils/allocation"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

// PgxLoanRepository persists loans. Disbursement and repayment couple
// loan and schedule state with the GL posting in one transaction.
type PgxLoanRepository struct {
	BaseRepository
}

func newPgxLoanRepository(base BaseRepository) *PgxLoanRepository {
	return &PgxLoanRepository{BaseRepository: base}
}

var _ portsrepo.LoanRepository = (*PgxLoanRepository)(nil)

// CreateLoan persists the loan row, its full schedule, and the posted
// disbursement bundle as one unit. A reused disbursement reference rolls
// everything back as a duplicate.
func (r *PgxLoanRepository) CreateLoan(ctx context.Context, loan domain.Loan, schedule []domain.ScheduleEntry, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelLoan(loan)
	_, err = tx.Exec(ctx, `
		INSERT INTO loans (loan_id, customer_id, principal, annual_rate, tenure_months, method,
			disbursed_on, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.LoanID, m.CustomerID, m.Principal, m.AnnualRate, m.TenureMonths, m.Method,
		m.DisbursedOn, m.Status, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert loan %s", loan.LoanID)
	}

	batch := &pgx.Batch{}
	scheduleQuery := `
		INSERT INTO loan_schedules (schedule_id, loan_id, installment_no, due_date,
			principal_due, interest_due, principal_paid, interest_paid, status,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	for _, entry := range schedule {
		ms := mapping.ToModelScheduleEntry(entry)
		batch.Queue(scheduleQuery,
			ms.ScheduleID, ms.LoanID, ms.InstallmentNo, ms.DueDate,
			ms.PrincipalDue, ms.InterestDue, ms.PrincipalPaid, ms.InterestPaid, ms.Status,
			ms.CreatedAt, ms.CreatedBy, ms.LastUpdatedAt, ms.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert schedule for loan %s", loan.LoanID)
	}

	entry, err := persistBundleTx(ctx, tx, bundle, false)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyRepayment posts the repayment bundle and applies the allocator's
// schedule updates atomically. The loan row is locked first so two
// concurrent repayments against the same loan serialize.
func (r *PgxLoanRepository) ApplyRepayment(ctx context.Context, loanID string, updates []allocation.ScheduleUpdate, bundle portsrepo.PostingBundle, closeLoan bool) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM loans WHERE loan_id = $1 FOR UPDATE`, loanID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock loan %s", loanID)
	}
	if domain.LoanStatus(status) != domain.LoanActive {
		return nil, apperrors.New(apperrors.CodeValidation, "loan %s is %s", loanID, status)
	}

	entry, err := persistBundleTx(ctx, tx, bundle, false)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	actorID := bundle.Entry.CreatedBy
	batch := &pgx.Batch{}
	updateQuery := `
		UPDATE loan_schedules
		SET interest_paid = interest_paid + $1,
		    principal_paid = principal_paid + $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE schedule_id = $6`
	for _, u := range updates {
		batch.Queue(updateQuery, u.InterestApplied, u.PrincipalApplied, models.ScheduleStatus(u.NewStatus), now, actorID, u.ScheduleID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to update schedule for loan %s", loanID)
	}

	if closeLoan {
		_, err = tx.Exec(ctx, `
			UPDATE loans
			SET status = $1, last_updated_at = $2, last_updated_by = $3
			WHERE loan_id = $4`,
			domain.LoanClosed, now, actorID, loanID,
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to close loan %s", loanID)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *PgxLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	var m models.Loan
	err := r.Pool.QueryRow(ctx, `
		SELECT loan_id, customer_id, principal, annual_rate, tenure_months, method,
		       disbursed_on, status, created_at, created_by, last_updated_at, last_updated_by
		FROM loans
		WHERE loan_id = $1`, loanID,
	).Scan(
		&m.LoanID, &m.CustomerID, &m.Principal, &m.AnnualRate, &m.TenureMonths, &m.Method,
		&m.DisbursedOn, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to find loan %s", loanID)
	}
	loan := mapping.ToDomainLoan(m)
	return &loan, nil
}
