package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/models"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

// PgxDepositRepository persists fixed deposits. Each money movement
// couples the deposit state change with its GL posting in one
// transaction; the accrual batch commits one deposit at a time.
type PgxDepositRepository struct {
	BaseRepository
}

func newPgxDepositRepository(base BaseRepository) *PgxDepositRepository {
	return &PgxDepositRepository{BaseRepository: base}
}

var _ portsrepo.DepositRepository = (*PgxDepositRepository)(nil)

const depositColumns = `deposit_id, customer_id, number, principal, annual_rate, term_months,
	start_date, maturity_date, accrued_interest, last_accrued_at, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanDeposit(row pgx.Row) (*domain.FixedDeposit, error) {
	var m models.FixedDeposit
	err := row.Scan(
		&m.DepositID, &m.CustomerID, &m.Number, &m.Principal, &m.AnnualRate, &m.TermMonths,
		&m.StartDate, &m.MaturityDate, &m.AccruedInterest, &m.LastAccruedAt, &m.Status,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan fixed deposit")
	}
	deposit := mapping.ToDomainDeposit(m)
	return &deposit, nil
}

// CreateDeposit persists the deposit row and the posted funding bundle
// as one unit.
func (r *PgxDepositRepository) CreateDeposit(ctx context.Context, deposit domain.FixedDeposit, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelDeposit(deposit)
	_, err = tx.Exec(ctx, `
		INSERT INTO fixed_deposits (`+depositColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.DepositID, m.CustomerID, m.Number, m.Principal, m.AnnualRate, m.TermMonths,
		m.StartDate, m.MaturityDate, m.AccruedInterest, m.LastAccruedAt, m.Status,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.CodeDuplicate, err, "deposit number %s already exists", deposit.Number)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert fixed deposit %s", deposit.DepositID)
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

func (r *PgxDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.FixedDeposit, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+depositColumns+` FROM fixed_deposits WHERE deposit_id = $1`, depositID)
	return scanDeposit(row)
}

// ListAccruable lists active deposits never accrued or last accrued more
// than a month before asOf. Deposits whose maturity fell before the
// accrual window earn nothing further; MarkMatured retires them.
func (r *PgxDepositRepository) ListAccruable(ctx context.Context, asOf time.Time) ([]domain.FixedDeposit, error) {
	cutoff := asOf.AddDate(0, -1, 0)
	rows, err := r.Pool.Query(ctx, `
		SELECT `+depositColumns+`
		FROM fixed_deposits
		WHERE status = $1 AND (last_accrued_at IS NULL OR last_accrued_at <= $2)
		  AND maturity_date > $2
		ORDER BY deposit_id`,
		string(domain.DepositActive), cutoff)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to list accruable deposits")
	}
	defer rows.Close()

	var deposits []domain.FixedDeposit
	for rows.Next() {
		deposit, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		deposits = append(deposits, *deposit)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read accruable deposits")
	}
	return deposits, nil
}

// MarkMatured flips every active deposit past its maturity date to
// MATURED and returns how many changed. Matured deposits stop accruing
// and wait for withdrawal.
func (r *PgxDepositRepository) MarkMatured(ctx context.Context, asOf time.Time, actorID string) (int64, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tag, err := r.Pool.Exec(ctx, `
		UPDATE fixed_deposits
		SET status = $1,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE status = $4 AND maturity_date <= $5`,
		string(domain.DepositMatured), time.Now(), actorID, string(domain.DepositActive), asOf,
	)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeInternal, err, "failed to mark matured deposits")
	}
	return tag.RowsAffected(), nil
}

// ApplyAccrual adds one month of interest to the deposit and posts the
// accrual bundle as that deposit's own atomic unit.
func (r *PgxDepositRepository) ApplyAccrual(ctx context.Context, depositID string, amount decimal.Decimal, accruedAt time.Time, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM fixed_deposits WHERE deposit_id = $1 FOR UPDATE`, depositID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock deposit %s", depositID)
	}
	if domain.DepositStatus(status) != domain.DepositActive {
		return nil, apperrors.New(apperrors.CodeValidation, "deposit %s is %s", depositID, status)
	}

	entry, err := persistBundleTx(ctx, tx, bundle, false)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE fixed_deposits
		SET accrued_interest = accrued_interest + $1,
		    last_accrued_at = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE deposit_id = $5`,
		amount, accruedAt, entry.LastUpdatedAt, entry.CreatedBy, depositID,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to apply accrual for deposit %s", depositID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// ApplyWithdrawal flips the deposit to its terminal status and posts the
// payout bundle in one transaction.
func (r *PgxDepositRepository) ApplyWithdrawal(ctx context.Context, depositID string, status domain.DepositStatus, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM fixed_deposits WHERE deposit_id = $1 FOR UPDATE`, depositID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock deposit %s", depositID)
	}
	if domain.DepositStatus(current) == domain.DepositWithdrawn {
		return nil, apperrors.New(apperrors.CodeValidation, "deposit %s is already withdrawn", depositID)
	}

	entry, err := persistBundleTx(ctx, tx, bundle, false)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE fixed_deposits
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE deposit_id = $4`,
		string(status), entry.LastUpdatedAt, entry.CreatedBy, depositID,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to close deposit %s", depositID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}
