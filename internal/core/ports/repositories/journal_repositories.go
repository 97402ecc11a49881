package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// PostingBundle carries everything one journal posting writes: the header,
// its lines, and the net balance delta per account. Repositories persist a
// bundle as a single database transaction; a partially applied bundle is
// never observable.
type PostingBundle struct {
	Entry   domain.JournalEntry
	Lines   []domain.JournalLine
	Changes map[string]decimal.Decimal
	// Post applies the balance deltas and lands the entry POSTED in the
	// same transaction; otherwise the entry is a DRAFT with zero balance
	// effect.
	Post bool
}

// JournalRepository is the persistence port for journal entries and lines.
// Every mutating method re-checks the financial period status inside its
// transaction, at the moment of write.
type JournalRepository interface {
	// CreateEntry persists a bundle. The returned entry carries the
	// sequence-assigned entry number. A reused source reference fails as
	// a duplicate.
	CreateEntry(ctx context.Context, bundle PostingBundle) (*domain.JournalEntry, error)

	// PostEntry transitions a DRAFT/PENDING_APPROVAL entry to POSTED and
	// applies the balance deltas atomically with the status change.
	PostEntry(ctx context.Context, entryID string, changes map[string]decimal.Decimal, approverID string, postedAt time.Time) error

	// ReverseEntry persists the reversal bundle, marks the original
	// reversed and links both entries, all in one transaction. Fails as
	// already-reversed when the original's reversed flag is set.
	ReverseEntry(ctx context.Context, originalEntryID string, bundle PostingBundle) (*domain.JournalEntry, error)

	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)
}
