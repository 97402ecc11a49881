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

const accountColumns = `account_id, code, name, account_type, normal_side, is_active, is_header,
	opening_balance, balance, created_at, created_by, last_updated_at, last_updated_by`

// modelAccountRow scans one accounts row.
type modelAccountRow struct {
	account models.Account
}

func (m *modelAccountRow) scan(row pgx.Row) error {
	err := row.Scan(
		&m.account.AccountID,
		&m.account.Code,
		&m.account.Name,
		&m.account.AccountType,
		&m.account.NormalSide,
		&m.account.IsActive,
		&m.account.IsHeader,
		&m.account.OpeningBalance,
		&m.account.Balance,
		&m.account.CreatedAt,
		&m.account.CreatedBy,
		&m.account.LastUpdatedAt,
		&m.account.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan account")
	}
	return nil
}

// PgxAccountRepository persists the chart of accounts.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(base BaseRepository) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: base}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.AccountID, m.Code, m.Name, m.AccountType, m.NormalSide, m.IsActive, m.IsHeader,
		m.OpeningBalance, m.Balance, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Wrap(apperrors.CodeDuplicate, err, "account code %s already exists", account.Code)
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert account %s", account.Code)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = $1`, accountID)
	var m modelAccountRow
	if err := m.scan(row); err != nil {
		return nil, err
	}
	account := mapping.ToDomainAccount(m.account)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = $1`, code)
	var m modelAccountRow
	if err := m.scan(row); err != nil {
		return nil, err
	}
	account := mapping.ToDomainAccount(m.account)
	return &account, nil
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE account_id = ANY($1)`, accountIDs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query accounts by ids")
	}
	defer rows.Close()
	return collectAccounts(rows, func(a domain.Account) string { return a.AccountID })
}

func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ANY($1)`, codes)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query accounts by codes")
	}
	defer rows.Close()
	return collectAccounts(rows, func(a domain.Account) string { return a.Code })
}

func collectAccounts(rows pgx.Rows, key func(domain.Account) string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account)
	for rows.Next() {
		var m modelAccountRow
		if err := m.scan(rows); err != nil {
			return nil, err
		}
		account := mapping.ToDomainAccount(m.account)
		accounts[key(account)] = account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read accounts")
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY code LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to list accounts")
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		var m modelAccountRow
		if err := m.scan(rows); err != nil {
			return nil, err
		}
		accounts = append(accounts, mapping.ToDomainAccount(m.account))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read accounts")
	}
	return accounts, nil
}

func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts
		SET name = $1, is_active = $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $5`,
		m.Name, m.IsActive, m.LastUpdatedAt, m.LastUpdatedBy, m.AccountID,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to update account %s", account.AccountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID, actorID string, now time.Time) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE account_id = $3`,
		now, actorID, accountID,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to deactivate account %s", accountID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
