package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// AccountActivity is one account's posted debit and credit sums up to a
// date, the raw material for balance projection.
type AccountActivity struct {
	Account   domain.Account
	DebitSum  decimal.Decimal
	CreditSum decimal.Decimal
}

// ReportingRepository is the read-side port. It only ever reads POSTED
// lines; drafts have no balance effect anywhere in the system.
type ReportingRepository interface {
	// SumPostedLines returns the debit and credit sums of all posted lines
	// for one account dated on or before asOf.
	SumPostedLines(ctx context.Context, accountID string, asOf time.Time) (debitSum, creditSum decimal.Decimal, err error)

	// TrialBalanceActivity returns activity for every active, non-header
	// account, including accounts with no lines (zero sums).
	TrialBalanceActivity(ctx context.Context, asOf time.Time) ([]AccountActivity, error)

	// LedgerLines returns posted lines for one account in [from, to],
	// chronological, without running balances (the projector adds those).
	LedgerLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error)
}
