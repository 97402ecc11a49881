package services

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/dto"
)

// DepositSvcFacade defines fixed deposit operations.
type DepositSvcFacade interface {
	// CreateDeposit opens and funds a fixed deposit, posting the funding
	// entry atomically with the deposit record.
	CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, actor domain.Actor) (*domain.FixedDeposit, error)

	// GetDeposit retrieves a fixed deposit.
	GetDeposit(ctx context.Context, depositID string) (*domain.FixedDeposit, error)

	// AccrueInterest posts one month of interest expense for every active
	// deposit not yet accrued through asOf. Failures are collected per
	// deposit, not fatal to the run.
	AccrueInterest(ctx context.Context, asOf time.Time, actor domain.Actor) (*dto.AccrualRunResponse, error)

	// Withdraw pays out principal plus accrued interest at or after
	// maturity and closes the deposit.
	Withdraw(ctx context.Context, depositID string, req dto.WithdrawDepositRequest, actor domain.Actor) (*domain.FixedDeposit, error)
}
