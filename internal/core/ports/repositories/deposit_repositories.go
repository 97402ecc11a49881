package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// DepositRepository is the persistence port for fixed deposits. Every
// money movement couples the deposit state change with its GL posting in
// one transaction; the accrual batch commits one deposit at a time.
type DepositRepository interface {
	// CreateDeposit persists the deposit and posts the funding bundle.
	CreateDeposit(ctx context.Context, deposit domain.FixedDeposit, bundle PostingBundle) (*domain.JournalEntry, error)

	FindDepositByID(ctx context.Context, depositID string) (*domain.FixedDeposit, error)

	// ListAccruable lists active deposits whose last accrual is more than
	// a month behind asOf (or never accrued). Deposits already past
	// maturity are excluded.
	ListAccruable(ctx context.Context, asOf time.Time) ([]domain.FixedDeposit, error)

	// MarkMatured flips active deposits whose maturity date has passed to
	// MATURED, returning the count.
	MarkMatured(ctx context.Context, asOf time.Time, actorID string) (int64, error)

	// ApplyAccrual adds one month of interest to the deposit and posts the
	// accrual bundle as that deposit's own atomic unit.
	ApplyAccrual(ctx context.Context, depositID string, amount decimal.Decimal, accruedAt time.Time, bundle PostingBundle) (*domain.JournalEntry, error)

	// ApplyWithdrawal flips the deposit to the given terminal status and
	// posts the payout bundle.
	ApplyWithdrawal(ctx context.Context, depositID string, status domain.DepositStatus, bundle PostingBundle) (*domain.JournalEntry, error)
}
