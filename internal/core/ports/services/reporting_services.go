package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// ReportingSvcFacade defines derived-state reporting operations. All
// figures are computed from posted lines only.
type ReportingSvcFacade interface {
	// GetAccountBalance computes an account's signed balance as of a date
	// from its opening balance and posted lines.
	GetAccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error)

	// ReconcileBalance recomputes an account's balance from posted lines
	// and compares it with the stored running balance. A non-zero
	// difference indicates ledger corruption.
	ReconcileBalance(ctx context.Context, accountID string) (stored, computed decimal.Decimal, err error)

	// GenerateTrialBalance produces the trial balance as of a date.
	GenerateTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error)

	// GetLedger produces an account statement with running balances over
	// a date range.
	GetLedger(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountLedger, error)
}
