package services

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
)

// SubmitEntryInput is a fully resolved posting request: lines carry
// account IDs, not codes. Handlers and workflow services build it.
type SubmitEntryInput struct {
	EntryDate   time.Time
	Description string
	Source      domain.SourceRef
	Lines       []domain.JournalLine
	AutoPost    bool
}

// PostingWriterSvc defines write operations on the journal.
type PostingWriterSvc interface {
	// SubmitEntry validates and persists a journal entry. With AutoPost it
	// also posts in the same unit of work; otherwise the entry stays a
	// draft awaiting approval.
	SubmitEntry(ctx context.Context, input SubmitEntryInput, actor domain.Actor) (*domain.JournalEntry, error)

	// PostEntry posts a draft. The approver must differ from the creator
	// and have sufficient approval limit.
	PostEntry(ctx context.Context, entryID string, actor domain.Actor) (*domain.JournalEntry, error)

	// ReverseEntry posts a mirror-image entry against a posted original
	// and links the pair. Returns the reversal entry.
	ReverseEntry(ctx context.Context, entryID string, reason string, effectiveDate *time.Time, actor domain.Actor) (*domain.JournalEntry, error)
}

// PostingReaderSvc defines read operations on the journal.
type PostingReaderSvc interface {
	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// PostingSvcFacade combines all journal posting service interfaces.
type PostingSvcFacade interface {
	PostingWriterSvc
	PostingReaderSvc
}
