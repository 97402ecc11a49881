package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// EntryLineRequest is one line of a manual journal submission. Accounts
// are referenced by their stable code; exactly one of debit and credit
// must be positive.
type EntryLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// SubmitEntryRequest creates a journal entry, optionally auto-posted.
type SubmitEntryRequest struct {
	EntryDate   time.Time          `json:"entryDate" binding:"required"`
	Description string             `json:"description" binding:"required"`
	Reference   string             `json:"reference" binding:"required"`
	AutoPost    bool               `json:"autoPost"`
	Lines       []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// ReverseEntryRequest reverses a posted entry.
type ReverseEntryRequest struct {
	Reason        string     `json:"reason" binding:"required"`
	EffectiveDate *time.Time `json:"effectiveDate"`
}

// EntryLineResponse mirrors a persisted journal line.
type EntryLineResponse struct {
	LineID    string          `json:"lineID"`
	AccountID string          `json:"accountID"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Memo      string          `json:"memo"`
}

// EntryResponse mirrors a persisted journal entry.
type EntryResponse struct {
	EntryID         string              `json:"entryID"`
	EntryNumber     string              `json:"entryNumber"`
	EntryDate       time.Time           `json:"entryDate"`
	Description     string              `json:"description"`
	Status          string              `json:"status"`
	Reversed        bool                `json:"reversed"`
	ReversalEntryID *string             `json:"reversalEntryID,omitempty"`
	ReversedEntryID *string             `json:"reversedEntryID,omitempty"`
	TotalDebit      decimal.Decimal     `json:"totalDebit"`
	TotalCredit     decimal.Decimal     `json:"totalCredit"`
	Source          domain.SourceRef    `json:"source"`
	Lines           []EntryLineResponse `json:"lines,omitempty"`
}

// ToEntryResponse maps a domain entry (and any loaded lines) to its DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	resp := EntryResponse{
		EntryID:         e.EntryID,
		EntryNumber:     e.EntryNumber,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		Status:          string(e.Status),
		Reversed:        e.Reversed,
		ReversalEntryID: e.ReversalEntryID,
		ReversedEntryID: e.ReversedEntryID,
		TotalDebit:      e.TotalDebit,
		TotalCredit:     e.TotalCredit,
		Source:          e.Source,
	}
	for _, line := range e.Lines {
		resp.Lines = append(resp.Lines, EntryLineResponse{
			LineID:    line.LineID,
			AccountID: line.AccountID,
			Debit:     line.Debit,
			Credit:    line.Credit,
			Memo:      line.Memo,
		})
	}
	return resp
}
