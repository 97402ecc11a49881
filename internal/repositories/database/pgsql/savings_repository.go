package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/models"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

// PgxSavingsRepository persists customer savings accounts. Movements
// couple the customer balance with the GL posting in one transaction.
type PgxSavingsRepository struct {
	BaseRepository
}

func newPgxSavingsRepository(base BaseRepository) *PgxSavingsRepository {
	return &PgxSavingsRepository{BaseRepository: base}
}

var _ portsrepo.SavingsRepository = (*PgxSavingsRepository)(nil)

const savingsColumns = `savings_id, customer_id, number, balance, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxSavingsRepository) CreateSavingsAccount(ctx context.Context, account domain.SavingsAccount) error {
	m := mapping.ToModelSavings(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO savings_accounts (`+savingsColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		m.SavingsID, m.CustomerID, m.Number, m.Balance, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.CodeDuplicate, err, "savings account number %s already exists", account.Number)
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert savings account %s", account.SavingsID)
	}
	return nil
}

func (r *PgxSavingsRepository) FindSavingsByID(ctx context.Context, savingsID string) (*domain.SavingsAccount, error) {
	var m models.SavingsAccount
	err := r.Pool.QueryRow(ctx,
		`SELECT `+savingsColumns+` FROM savings_accounts WHERE savings_id = $1`, savingsID,
	).Scan(
		&m.SavingsID, &m.CustomerID, &m.Number, &m.Balance, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to find savings account %s", savingsID)
	}
	account := mapping.ToDomainSavings(m)
	return &account, nil
}

// ApplyDeposit credits the customer balance and posts the bundle in one
// transaction.
func (r *PgxSavingsRepository) ApplyDeposit(ctx context.Context, savingsID string, amount decimal.Decimal, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	return r.applyMovement(ctx, savingsID, amount, bundle)
}

// ApplyWithdrawal debits the customer balance under a row lock; an
// overdraw fails the whole transaction including the posting.
func (r *PgxSavingsRepository) ApplyWithdrawal(ctx context.Context, savingsID string, amount decimal.Decimal, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	return r.applyMovement(ctx, savingsID, amount.Neg(), bundle)
}

func (r *PgxSavingsRepository) applyMovement(ctx context.Context, savingsID string, delta decimal.Decimal, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var balance decimal.Decimal
	var isActive bool
	err = tx.QueryRow(ctx,
		`SELECT balance, is_active FROM savings_accounts WHERE savings_id = $1 FOR UPDATE`, savingsID,
	).Scan(&balance, &isActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock savings account %s", savingsID)
	}
	if !isActive {
		return nil, apperrors.New(apperrors.CodeValidation, "savings account %s is inactive", savingsID)
	}
	newBalance := balance.Add(delta)
	if newBalance.IsNegative() {
		return nil, apperrors.New(apperrors.CodeInsufficientBalance,
			"withdrawal %s exceeds balance %s on savings account %s", delta.Neg().String(), balance.String(), savingsID)
	}

	entry, err := persistBundleTx(ctx, tx, bundle, false)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE savings_accounts
		SET balance = $1, last_updated_at = $2, last_updated_by = $3
		WHERE savings_id = $4`,
		newBalance, entry.LastUpdatedAt, entry.CreatedBy, savingsID,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to update savings balance for %s", savingsID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}
