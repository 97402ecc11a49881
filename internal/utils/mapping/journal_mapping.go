package mapping

import (
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		Status:          models.EntryStatus(d.Status),
		Reversed:        d.Reversed,
		ReversalEntryID: d.ReversalEntryID,
		ReversedEntryID: d.ReversedEntryID,
		TotalDebit:      d.TotalDebit,
		TotalCredit:     d.TotalCredit,
		SourceModule:    d.Source.Module,
		SourceType:      d.Source.EventType,
		SourceReference: d.Source.Reference,
		PostedBy:        d.PostedBy,
		PostedAt:        d.PostedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		Status:          domain.EntryStatus(m.Status),
		Reversed:        m.Reversed,
		ReversalEntryID: m.ReversalEntryID,
		ReversedEntryID: m.ReversedEntryID,
		TotalDebit:      m.TotalDebit,
		TotalCredit:     m.TotalCredit,
		Source: domain.SourceRef{
			Module:    m.SourceModule,
			EventType: m.SourceType,
			Reference: m.SourceReference,
		},
		PostedBy:    m.PostedBy,
		PostedAt:    m.PostedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:     d.LineID,
		EntryID:    d.EntryID,
		AccountID:  d.AccountID,
		Debit:      d.Debit,
		Credit:     d.Credit,
		Memo:       d.Memo,
		CustomerID: d.CustomerID,
		LoanID:     d.LoanID,
	}
}

func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:     m.LineID,
		EntryID:    m.EntryID,
		AccountID:  m.AccountID,
		Debit:      m.Debit,
		Credit:     m.Credit,
		Memo:       m.Memo,
		CustomerID: m.CustomerID,
		LoanID:     m.LoanID,
	}
}

func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
