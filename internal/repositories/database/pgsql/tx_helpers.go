package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/utils/mapping"
)

// uniqueViolationCode is the Postgres error code for unique constraint
// violations.
const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// nextEntryNumber draws the next human-readable entry number from the
// database sequence, so concurrent postings never collide.
func nextEntryNumber(ctx context.Context, tx pgx.Tx) (string, error) {
	var n int64
	if err := tx.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq')`).Scan(&n); err != nil {
		return "", apperrors.Wrap(apperrors.CodeInternal, err, "failed to allocate entry number")
	}
	return fmt.Sprintf("JE-%06d", n), nil
}

// checkPeriodOpenTx re-checks the period status at the moment of write,
// inside the posting transaction. A period with no row is open.
func checkPeriodOpenTx(ctx context.Context, tx pgx.Tx, date time.Time, allowSoftClose bool) error {
	year, month := domain.PeriodKeyFor(date)
	var status string
	err := tx.QueryRow(ctx,
		`SELECT status FROM financial_periods WHERE year = $1 AND month = $2`,
		year, int(month),
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to check period status")
	}

	switch domain.PeriodStatus(status) {
	case domain.PeriodOpen:
		return nil
	case domain.PeriodSoftClose:
		if allowSoftClose {
			return nil
		}
		return apperrors.New(apperrors.CodePeriodClosed, "period %04d-%02d is soft-closed to new entries", year, int(month))
	default:
		return apperrors.New(apperrors.CodePeriodClosed, "period %04d-%02d is hard-closed", year, int(month))
	}
}

// lockAccountsTx locks the given accounts FOR UPDATE and returns them.
// Every requested account must exist.
func lockAccountsTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	rows, err := tx.Query(ctx, `
		SELECT account_id, code, name, account_type, normal_side, is_active, is_header,
		       opening_balance, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE`, accountIDs)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock accounts")
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		var m modelAccountRow
		if err := m.scan(rows); err != nil {
			return nil, err
		}
		accounts[m.account.AccountID] = mapping.ToDomainAccount(m.account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read locked accounts")
	}
	for _, id := range accountIDs {
		if _, ok := accounts[id]; !ok {
			return nil, apperrors.New(apperrors.CodeInvalidAccount, "account %s does not exist", id)
		}
	}
	return accounts, nil
}

// applyBalanceChangesTx applies each account's net delta as an atomic
// increment. It never writes an absolute balance.
func applyBalanceChangesTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, actorID string, now time.Time) error {
	batch := &pgx.Batch{}
	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $1,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE account_id = $4`
	for accountID, delta := range changes {
		batch.Queue(query, delta, now, actorID, accountID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to apply balance changes")
	}
	return nil
}

// insertLinesTx inserts the bundle's lines as one batch.
func insertLinesTx(ctx context.Context, tx pgx.Tx, lines []domain.JournalLine) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, memo, customer_id, loan_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query, m.LineID, m.EntryID, m.AccountID, m.Debit, m.Credit, m.Memo, m.CustomerID, m.LoanID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert journal lines")
	}
	return nil
}

// persistBundleTx writes a posting bundle inside an existing transaction:
// period re-check, entry number allocation, entry and line inserts, and,
// for posted bundles, the balance application under account row locks.
// The returned entry carries the assigned number.
func persistBundleTx(ctx context.Context, tx pgx.Tx, bundle portsrepo.PostingBundle, allowSoftClose bool) (*domain.JournalEntry, error) {
	if err := checkPeriodOpenTx(ctx, tx, bundle.Entry.EntryDate, allowSoftClose); err != nil {
		return nil, err
	}

	entryNumber, err := nextEntryNumber(ctx, tx)
	if err != nil {
		return nil, err
	}
	entry := bundle.Entry
	entry.EntryNumber = entryNumber

	m := mapping.ToModelJournalEntry(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, entry_number, entry_date, description, status,
			reversed, reversal_entry_id, reversed_entry_id,
			total_debit, total_credit,
			source_module, source_type, source_reference,
			posted_by, posted_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		m.EntryID, m.EntryNumber, m.EntryDate, m.Description, m.Status,
		m.Reversed, m.ReversalEntryID, m.ReversedEntryID,
		m.TotalDebit, m.TotalCredit,
		m.SourceModule, m.SourceType, m.SourceReference,
		m.PostedBy, m.PostedAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Wrap(apperrors.CodeDuplicate, err, "source reference %s already used", entry.Source.Reference)
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to insert journal entry %s", entry.EntryID)
	}

	if err := insertLinesTx(ctx, tx, bundle.Lines); err != nil {
		return nil, err
	}

	if bundle.Post {
		accountIDs := make([]string, 0, len(bundle.Changes))
		for accountID := range bundle.Changes {
			accountIDs = append(accountIDs, accountID)
		}
		if _, err := lockAccountsTx(ctx, tx, accountIDs); err != nil {
			return nil, err
		}
		if err := applyBalanceChangesTx(ctx, tx, bundle.Changes, entry.CreatedBy, entry.LastUpdatedAt); err != nil {
			return nil, err
		}
	}
	return &entry, nil
}
