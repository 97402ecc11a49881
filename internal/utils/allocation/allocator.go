// Package allocation splits an incoming repayment across a loan's
// outstanding installments, oldest due first, interest before principal.
// It derives the journal lines the split implies but persists nothing;
// the loan workflow applies schedule mutation and posting as one atomic
// unit.
package allocation

import (
	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
)

// ScheduleUpdate is the allocator's instruction for one installment:
// the amounts to add to its paid counters and the status it lands in.
type ScheduleUpdate struct {
	ScheduleID       string
	InstallmentNo    int
	InterestApplied  decimal.Decimal
	PrincipalApplied decimal.Decimal
	NewStatus        domain.ScheduleStatus
}

// Accounts are the resolved GL accounts a repayment touches.
type Accounts struct {
	CashAccountID       string
	ReceivableAccountID string
	InterestAccountID   string
}

// Result is a fully derived repayment: schedule instructions plus the
// balanced lines for a single journal entry (debit cash; credit loans
// receivable for principal; credit interest income for interest).
type Result struct {
	Updates        []ScheduleUpdate
	TotalPrincipal decimal.Decimal
	TotalInterest  decimal.Decimal
	Lines          []domain.JournalLine
}

// Allocate consumes payment across entries in the given order. Entries
// must arrive oldest-due-first and already exclude fully paid rows.
// A payment exceeding the total outstanding is rejected up front; nothing
// is silently discarded or held as credit.
func Allocate(payment decimal.Decimal, entries []domain.ScheduleEntry, accounts Accounts, loanID, customerID string) (*Result, error) {
	if payment.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.New(apperrors.CodeValidation, "payment amount must be positive, got %s", payment)
	}

	outstanding := decimal.Zero
	for _, e := range entries {
		outstanding = outstanding.Add(e.Outstanding())
	}
	if payment.GreaterThan(outstanding) {
		return nil, apperrors.New(apperrors.CodeValidation,
			"payment %s exceeds total outstanding %s", payment, outstanding)
	}

	res := &Result{
		TotalPrincipal: decimal.Zero,
		TotalInterest:  decimal.Zero,
	}

	remaining := payment
	for _, entry := range entries {
		if remaining.IsZero() {
			break
		}

		interestApplied := decimal.Min(remaining, entry.OutstandingInterest())
		remaining = remaining.Sub(interestApplied)

		principalApplied := decimal.Min(remaining, entry.OutstandingPrincipal())
		remaining = remaining.Sub(principalApplied)

		if interestApplied.IsZero() && principalApplied.IsZero() {
			continue
		}

		after := entry
		after.InterestPaid = after.InterestPaid.Add(interestApplied)
		after.PrincipalPaid = after.PrincipalPaid.Add(principalApplied)

		status := domain.SchedulePartial
		if after.Settled() {
			status = domain.SchedulePaid
		}

		res.Updates = append(res.Updates, ScheduleUpdate{
			ScheduleID:       entry.ScheduleID,
			InstallmentNo:    entry.InstallmentNo,
			InterestApplied:  interestApplied,
			PrincipalApplied: principalApplied,
			NewStatus:        status,
		})
		res.TotalInterest = res.TotalInterest.Add(interestApplied)
		res.TotalPrincipal = res.TotalPrincipal.Add(principalApplied)
	}

	res.Lines = deriveLines(res, accounts, loanID, customerID, payment)
	return res, nil
}

func deriveLines(res *Result, accounts Accounts, loanID, customerID string, payment decimal.Decimal) []domain.JournalLine {
	lines := []domain.JournalLine{{
		AccountID:  accounts.CashAccountID,
		Debit:      payment,
		Memo:       "loan repayment received",
		CustomerID: &customerID,
		LoanID:     &loanID,
	}}
	if res.TotalPrincipal.GreaterThan(decimal.Zero) {
		lines = append(lines, domain.JournalLine{
			AccountID:  accounts.ReceivableAccountID,
			Credit:     res.TotalPrincipal,
			Memo:       "principal repaid",
			CustomerID: &customerID,
			LoanID:     &loanID,
		})
	}
	if res.TotalInterest.GreaterThan(decimal.Zero) {
		lines = append(lines, domain.JournalLine{
			AccountID:  accounts.InterestAccountID,
			Credit:     res.TotalInterest,
			Memo:       "interest repaid",
			CustomerID: &customerID,
			LoanID:     &loanID,
		})
	}
	return lines
}
