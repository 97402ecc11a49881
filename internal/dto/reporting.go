package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// TrialBalanceRowResponse is one non-zero account on the trial balance.
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse is the full statement; TotalDebit always equals
// TotalCredit when the ledger is consistent.
type TrialBalanceResponse struct {
	AsOf        time.Time                 `json:"asOf"`
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  decimal.Decimal           `json:"totalDebit"`
	TotalCredit decimal.Decimal           `json:"totalCredit"`
}

// LedgerLineResponse is one movement on an account statement.
type LedgerLineResponse struct {
	EntryID        string          `json:"entryID"`
	EntryNumber    string          `json:"entryNumber"`
	EntryDate      time.Time       `json:"entryDate"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// LedgerResponse is an account statement over a date range.
type LedgerResponse struct {
	AccountID      string               `json:"accountID"`
	Code           string               `json:"code"`
	From           time.Time            `json:"from"`
	To             time.Time            `json:"to"`
	OpeningBalance decimal.Decimal      `json:"openingBalance"`
	Lines          []LedgerLineResponse `json:"lines"`
	ClosingBalance decimal.Decimal      `json:"closingBalance"`
}

// BalanceResponse is one account's signed balance as of a date.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Code      string          `json:"code"`
	AsOf      time.Time       `json:"asOf"`
	Balance   decimal.Decimal `json:"balance"`
}

func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	resp := TrialBalanceResponse{
		AsOf:        tb.AsOf,
		TotalDebit:  tb.TotalDebit,
		TotalCredit: tb.TotalCredit,
	}
	for _, row := range tb.Rows {
		resp.Rows = append(resp.Rows, TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			Name:        row.AccountName,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		})
	}
	return resp
}

func ToLedgerResponse(l *domain.AccountLedger) LedgerResponse {
	resp := LedgerResponse{
		AccountID:      l.AccountID,
		Code:           l.Code,
		From:           l.From,
		To:             l.To,
		OpeningBalance: l.OpeningBalance,
		ClosingBalance: l.ClosingBalance,
	}
	for _, line := range l.Lines {
		resp.Lines = append(resp.Lines, LedgerLineResponse{
			EntryID:        line.EntryID,
			EntryNumber:    line.EntryNumber,
			EntryDate:      line.EntryDate,
			Description:    line.Description,
			Debit:          line.Debit,
			Credit:         line.Credit,
			RunningBalance: line.RunningBalance,
		})
	}
	return resp
}
