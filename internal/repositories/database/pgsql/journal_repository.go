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

const entryColumns = `entry_id, entry_number, entry_date, description, status,
	reversed, reversal_entry_id, reversed_entry_id,
	total_debit, total_credit,
	source_module, source_type, source_reference,
	posted_by, posted_at,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.EntryNumber, &m.EntryDate, &m.Description, &m.Status,
		&m.Reversed, &m.ReversalEntryID, &m.ReversedEntryID,
		&m.TotalDebit, &m.TotalCredit,
		&m.SourceModule, &m.SourceType, &m.SourceReference,
		&m.PostedBy, &m.PostedAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan journal entry")
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// PgxJournalRepository persists journal entries and lines. Every mutating
// method runs as one transaction and re-checks the period at write time.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(base BaseRepository) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: base}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// CreateEntry persists a posting bundle as one transaction.
func (r *PgxJournalRepository) CreateEntry(ctx context.Context, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Workflow bundles arrive pre-posted; a draft submission only needs
	// an open-enough period for new entries.
	entry, err := persistBundleTx(ctx, tx, bundle, false)
	if err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

// PostEntry transitions a draft to POSTED and applies the balance deltas
// in one transaction. The entry row is locked so two approvers cannot
// both post it.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, entryID string, changes map[string]decimal.Decimal, approverID string, postedAt time.Time) error {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	var entryDate time.Time
	err = tx.QueryRow(ctx,
		`SELECT status, entry_date FROM journal_entries WHERE entry_id = $1 FOR UPDATE`,
		entryID,
	).Scan(&status, &entryDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock entry %s", entryID)
	}
	if models.EntryStatus(status) == models.Posted {
		return apperrors.New(apperrors.CodeValidation, "entry %s is already posted", entryID)
	}
	if err := checkPeriodOpenTx(ctx, tx, entryDate, true); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET status = $1, posted_by = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE entry_id = $4`,
		models.Posted, approverID, postedAt, entryID,
	)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeInternal, err, "failed to post entry %s", entryID)
	}

	accountIDs := make([]string, 0, len(changes))
	for accountID := range changes {
		accountIDs = append(accountIDs, accountID)
	}
	if _, err := lockAccountsTx(ctx, tx, accountIDs); err != nil {
		return err
	}
	if err := applyBalanceChangesTx(ctx, tx, changes, approverID, postedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// ReverseEntry persists the reversal bundle, marks the original reversed
// and links the pair, all in one transaction. The original row lock makes
// a concurrent double reversal impossible: the loser sees reversed=true.
func (r *PgxJournalRepository) ReverseEntry(ctx context.Context, originalEntryID string, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	ctx, cancel := r.Bounded(ctx)
	defer cancel()

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var reversed bool
	var status string
	err = tx.QueryRow(ctx,
		`SELECT reversed, status FROM journal_entries WHERE entry_id = $1 FOR UPDATE`,
		originalEntryID,
	).Scan(&reversed, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to lock entry %s", originalEntryID)
	}
	if models.EntryStatus(status) != models.Posted {
		return nil, apperrors.New(apperrors.CodeNotPosted, "entry %s is not posted", originalEntryID)
	}
	if reversed {
		return nil, apperrors.New(apperrors.CodeAlreadyReversed, "entry %s is already reversed", originalEntryID)
	}

	entry, err := persistBundleTx(ctx, tx, bundle, true)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE journal_entries
		SET reversed = TRUE, reversal_entry_id = $1, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $4`,
		entry.EntryID, entry.LastUpdatedAt, entry.CreatedBy, originalEntryID,
	)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to link reversal for entry %s", originalEntryID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	row := r.Pool.QueryRow(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1`, entryID)
	return scanEntry(row)
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, entry_id, account_id, debit, credit, memo, customer_id, loan_id
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_id`, entryID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to query lines for entry %s", entryID)
	}
	defer rows.Close()

	var lines []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(&m.LineID, &m.EntryID, &m.AccountID, &m.Debit, &m.Credit, &m.Memo, &m.CustomerID, &m.LoanID); err != nil {
			return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to scan journal line")
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "failed to read journal lines")
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}
