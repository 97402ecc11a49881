// Package accounting holds the signing rules shared by the posting engine
// and the reporting projector, so stored balances and recomputed balances
// always agree on direction.
package accounting

import (
	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// SignedDelta is the effect of a single line on an account's balance:
// (debit - credit) when the account's normal side is debit, else
// (credit - debit).
func SignedDelta(line domain.JournalLine, normalSide domain.BalanceSide) decimal.Decimal {
	if normalSide == domain.DebitSide {
		return line.Debit.Sub(line.Credit)
	}
	return line.Credit.Sub(line.Debit)
}

// EntryTotals sums the debit and credit columns of a set of lines.
func EntryTotals(lines []domain.JournalLine) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// BalanceChanges groups lines by account and nets each account's signed
// delta. The caller applies each delta as an atomic increment; this
// function never reads a current balance.
func BalanceChanges(lines []domain.JournalLine, accounts map[string]domain.Account) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		acc := accounts[line.AccountID]
		delta := SignedDelta(line, acc.NormalSide)
		changes[line.AccountID] = changes[line.AccountID].Add(delta)
	}
	return changes
}

// MirrorLines builds the reversal lines for an entry: per line, debit and
// credit swapped, account and cross-references kept.
func MirrorLines(lines []domain.JournalLine) []domain.JournalLine {
	mirrored := make([]domain.JournalLine, len(lines))
	for i, line := range lines {
		mirrored[i] = domain.JournalLine{
			AccountID:  line.AccountID,
			Debit:      line.Credit,
			Credit:     line.Debit,
			Memo:       line.Memo,
			CustomerID: line.CustomerID,
			LoanID:     line.LoanID,
		}
	}
	return mirrored
}
