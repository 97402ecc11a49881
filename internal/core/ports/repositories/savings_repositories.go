package repositories

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// SavingsRepository is the persistence port for customer savings accounts.
// Deposit and withdrawal couple the customer balance change with the GL
// posting in one transaction; the withdrawal guard against overdrawing
// runs under a row lock inside that transaction.
type SavingsRepository interface {
	CreateSavingsAccount(ctx context.Context, account domain.SavingsAccount) error
	FindSavingsByID(ctx context.Context, savingsID string) (*domain.SavingsAccount, error)

	ApplyDeposit(ctx context.Context, savingsID string, amount decimal.Decimal, bundle PostingBundle) (*domain.JournalEntry, error)

	// ApplyWithdrawal fails with an insufficient-balance error when amount
	// exceeds the locked balance.
	ApplyWithdrawal(ctx context.Context, savingsID string, amount decimal.Decimal, bundle PostingBundle) (*domain.JournalEntry, error)
}
