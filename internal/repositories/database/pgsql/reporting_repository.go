package pgsql

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/models"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

// PgxReportingRepository is the read side. It only reads lines of POSTED
// entries.
type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(base BaseRepository) *PgxReportingRepository {
	return &PgxReportingRepository{BaseRepository: base}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) SumPostedLines(ctx context.Context, accountID string, asOf time.Time) (debitSum, creditSum decimal.Decimal, err error) {
	err = r.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.status = $2 AND e.entry_date <= $3`,
		accountID, models.Posted, asOf,
	).Scan(&debitSum, &creditSum)
	if err != nil {
		return decimal.Zero, decimal.Zero, apperrors.Wrap(apperrors.CodeInternal, err, "failed to sum posted lines for account %s", accountID)
	}
	return debitSum, creditSum, nil
}

// TrialBalanceActivity returns sums for every active non-header account,
// including accounts with no posted lines. Lines are filtered to POSTED
// entries dated on or before asOf before the join, so draft activity
// never leaks into the sums.
func (r *PgxReportingRepository) TrialBalanceActivity(ctx context.Context, asOf time.Time) ([]portsrepo.AccountActivity, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT a.account_id, a.code, a.name, a.account_type, a.normal_side, a.is_active, a.is_header,
		       a.opening_balance, a.balance, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM accounts a
		LEFT JOIN (
			SELECT jl.account_id, jl.debit, jl.credit
			FROM journal_lines jl
			JOIN journal_entries e ON e.entry_id = jl.entry_id
			WHERE e.status = $1 AND e.entry_date <= $2
		) l ON l.account_id = a.account_id
		WHERE a.is_active AND NOT a.is_header
		GROUP BY a.account_id
		ORDER BY a.code`,
		models.Posted, asOf)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query trial balance activity")
	}
	defer rows.Close()

	var activity []portsrepo.AccountActivity
	for rows.Next() {
		var m models.Account
		var debitSum, creditSum decimal.Decimal
		err := rows.Scan(
			&m.AccountID, &m.Code, &m.Name, &m.AccountType, &m.NormalSide, &m.IsActive, &m.IsHeader,
			&m.OpeningBalance, &m.Balance, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
			&debitSum, &creditSum,
		)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan trial balance row")
		}
		activity = append(activity, portsrepo.AccountActivity{
			Account:   mapping.ToDomainAccount(m),
			DebitSum:  debitSum,
			CreditSum: creditSum,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read trial balance activity")
	}
	return activity, nil
}

// LedgerLines returns posted lines chronologically; the projector adds
// running balances.
func (r *PgxReportingRepository) LedgerLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT e.entry_id, e.entry_number, e.entry_date, e.description, l.debit, l.credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1 AND e.status = $2 AND e.entry_date >= $3 AND e.entry_date <= $4
		ORDER BY e.entry_date, e.entry_number, l.line_id`,
		accountID, models.Posted, from, to)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query ledger lines for account %s", accountID)
	}
	defer rows.Close()

	var lines []domain.LedgerLine
	for rows.Next() {
		var line domain.LedgerLine
		if err := rows.Scan(&line.EntryID, &line.EntryNumber, &line.EntryDate, &line.Description, &line.Debit, &line.Credit); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan ledger line")
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read ledger lines")
	}
	return lines, nil
}
