package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry. Transitions are
// monotonic: DRAFT -> PENDING_APPROVAL -> POSTED. Posted entries are
// immutable; corrections happen only via reversal.
type EntryStatus string

const (
	Draft           EntryStatus = "DRAFT"
	PendingApproval EntryStatus = "PENDING_APPROVAL"
	Posted          EntryStatus = "POSTED"
)

// SourceRef identifies the business event a journal entry records, for
// traceability and retry idempotence. Reference must be unique per
// submission; a retried reference is rejected as a duplicate.
type SourceRef struct {
	Module    string `json:"module"`    // e.g. "loan", "savings", "deposit", "manual"
	EventType string `json:"eventType"` // e.g. "disbursement", "repayment"
	Reference string `json:"reference"` // external receipt / document number
}

// JournalEntry represents a single, balanced financial event composed of
// multiple lines.
type JournalEntry struct {
	EntryID     string      `json:"entryID"`
	EntryNumber string      `json:"entryNumber"` // human-readable, sequence-assigned
	EntryDate   time.Time   `json:"entryDate"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`

	// Reversal bookkeeping. Reversed plus the two links are set exactly
	// once; everything else on a POSTED entry is immutable.
	Reversed        bool    `json:"reversed"`
	ReversalEntryID *string `json:"reversalEntryID"` // entry that reverses this one
	ReversedEntryID *string `json:"reversedEntryID"` // entry this one reverses

	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`

	Source SourceRef `json:"source"`

	PostedBy *string    `json:"postedBy"`
	PostedAt *time.Time `json:"postedAt"`

	Lines []JournalLine `json:"lines,omitempty"` // often loaded separately
	AuditFields
}

// IsReversal reports whether the entry itself reverses another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversedEntryID != nil
}

// JournalLine is a single line item within an entry, affecting one account
// with exactly a debit or a credit, never both.
type JournalLine struct {
	LineID    string          `json:"lineID"`
	EntryID   string          `json:"entryID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`

	// Optional cross-references to the originating records.
	CustomerID *string `json:"customerID"`
	LoanID     *string `json:"loanID"`
}
