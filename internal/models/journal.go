package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus mirrors domain.EntryStatus.
type EntryStatus string

const (
	Draft           EntryStatus = "DRAFT"
	PendingApproval EntryStatus = "PENDING_APPROVAL"
	Posted          EntryStatus = "POSTED"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID         string
	EntryNumber     string
	EntryDate       time.Time
	Description     string
	Status          EntryStatus
	Reversed        bool
	ReversalEntryID *string
	ReversedEntryID *string
	TotalDebit      decimal.Decimal
	TotalCredit     decimal.Decimal
	SourceModule    string
	SourceType      string
	SourceReference string
	PostedBy        *string
	PostedAt        *time.Time
	AuditFields
}

// JournalLine is the journal_lines table row. Exactly one of Debit and
// Credit is nonzero, enforced by a table check constraint and re-validated
// by the posting engine.
type JournalLine struct {
	LineID     string
	EntryID    string
	AccountID  string
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	Memo       string
	CustomerID *string
	LoanID     *string
}
