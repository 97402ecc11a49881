package services

import (
	"context"

	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/dto"
)

// SavingsSvcFacade defines savings account operations. Deposits and
// withdrawals post their journal entries atomically with the balance
// change.
type SavingsSvcFacade interface {
	// OpenAccount creates a savings account with a zero balance.
	OpenAccount(ctx context.Context, req dto.OpenSavingsRequest, actor domain.Actor) (*domain.SavingsAccount, error)

	// GetAccount retrieves a savings account.
	GetAccount(ctx context.Context, savingsID string) (*domain.SavingsAccount, error)

	// Deposit credits the account and posts against the savings control
	// account.
	Deposit(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error)

	// Withdraw debits the account; overdrafts are rejected with
	// ErrInsufficientBalance.
	Withdraw(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error)

	// ChargeFee debits the account and posts the amount to fee income.
	// The overdraft guard applies as for withdrawals.
	ChargeFee(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error)
}
