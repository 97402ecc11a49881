package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
	"github.com/sokofin/corebank/internal/middleware"
	"github.com/sokofin/corebank/internal/registry"
)

// savingsService drives customer savings accounts. Each movement posts
// against the savings control account atomically with the balance change.
type savingsService struct {
	savingsRepo portsrepo.SavingsRepository
	accountRepo portsrepo.AccountRepository
	reg         *registry.Registry
}

// NewSavingsService creates a new savings service.
func NewSavingsService(savingsRepo portsrepo.SavingsRepository, accountRepo portsrepo.AccountRepository, reg *registry.Registry) portssvc.SavingsSvcFacade {
	return &savingsService{
		savingsRepo: savingsRepo,
		accountRepo: accountRepo,
		reg:         reg,
	}
}

var _ portssvc.SavingsSvcFacade = (*savingsService)(nil)

// OpenAccount creates a savings account with a zero balance.
func (s *savingsService) OpenAccount(ctx context.Context, req dto.OpenSavingsRequest, actor domain.Actor) (*domain.SavingsAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	account := domain.SavingsAccount{
		SavingsID:  uuid.NewString(),
		CustomerID: req.CustomerID,
		Number:     req.Number,
		Balance:    decimal.Zero,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	if err := s.savingsRepo.CreateSavingsAccount(ctx, account); err != nil {
		logger.Error("Failed to open savings account", slog.String("number", req.Number), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Savings account opened", slog.String("savings_id", account.SavingsID), slog.String("number", account.Number))
	return &account, nil
}

func (s *savingsService) GetAccount(ctx context.Context, savingsID string) (*domain.SavingsAccount, error) {
	return s.savingsRepo.FindSavingsByID(ctx, savingsID)
}

// Deposit credits the customer account: debit cash, credit the savings
// control liability.
func (s *savingsService) Deposit(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.validateMovement(ctx, savingsID, req.Amount)
	if err != nil {
		return nil, err
	}

	lines := []domain.JournalLine{
		{AccountID: s.reg.Cash, Debit: req.Amount, Credit: decimal.Zero, Memo: "Savings deposit", CustomerID: &account.CustomerID},
		{AccountID: s.reg.SavingsControl, Debit: decimal.Zero, Credit: req.Amount, Memo: "Savings deposit", CustomerID: &account.CustomerID},
	}
	source := domain.SourceRef{Module: "savings", EventType: "deposit", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.Date, fmt.Sprintf("Savings deposit %s", account.Number), source, lines)
	if err != nil {
		return nil, err
	}

	entry, err := s.savingsRepo.ApplyDeposit(ctx, savingsID, req.Amount, bundle)
	if err != nil {
		logger.Error("Failed to apply savings deposit", slog.String("savings_id", savingsID), slog.String("error", err.Error()))
		return nil, err
	}

	account.Balance = account.Balance.Add(req.Amount)
	logger.Info("Savings deposit applied",
		slog.String("savings_id", savingsID),
		slog.String("amount", req.Amount.String()),
		slog.String("entry_number", entry.EntryNumber),
	)
	return account, nil
}

// Withdraw debits the customer account: debit the savings control
// liability, credit cash. The repository enforces the overdraft guard
// under a row lock.
func (s *savingsService) Withdraw(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.validateMovement(ctx, savingsID, req.Amount)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(account.Balance) {
		return nil, apperrors.New(apperrors.CodeInsufficientBalance,
			"withdrawal %s exceeds balance %s on savings account %s", req.Amount.String(), account.Balance.String(), account.Number)
	}

	lines := []domain.JournalLine{
		{AccountID: s.reg.SavingsControl, Debit: req.Amount, Credit: decimal.Zero, Memo: "Savings withdrawal", CustomerID: &account.CustomerID},
		{AccountID: s.reg.Cash, Debit: decimal.Zero, Credit: req.Amount, Memo: "Savings withdrawal", CustomerID: &account.CustomerID},
	}
	source := domain.SourceRef{Module: "savings", EventType: "withdrawal", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.Date, fmt.Sprintf("Savings withdrawal %s", account.Number), source, lines)
	if err != nil {
		return nil, err
	}

	entry, err := s.savingsRepo.ApplyWithdrawal(ctx, savingsID, req.Amount, bundle)
	if err != nil {
		logger.Error("Failed to apply savings withdrawal", slog.String("savings_id", savingsID), slog.String("error", err.Error()))
		return nil, err
	}

	account.Balance = account.Balance.Sub(req.Amount)
	logger.Info("Savings withdrawal applied",
		slog.String("savings_id", savingsID),
		slog.String("amount", req.Amount.String()),
		slog.String("entry_number", entry.EntryNumber),
	)
	return account, nil
}

// ChargeFee levies a service fee against the customer balance: debit the
// savings control liability, credit fee income. Fees never overdraw the
// account.
func (s *savingsService) ChargeFee(ctx context.Context, savingsID string, req dto.SavingsMovementRequest, actor domain.Actor) (*domain.SavingsAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.validateMovement(ctx, savingsID, req.Amount)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(account.Balance) {
		return nil, apperrors.New(apperrors.CodeInsufficientBalance,
			"fee %s exceeds balance %s on savings account %s", req.Amount.String(), account.Balance.String(), account.Number)
	}

	lines := []domain.JournalLine{
		{AccountID: s.reg.SavingsControl, Debit: req.Amount, Credit: decimal.Zero, Memo: "Service fee", CustomerID: &account.CustomerID},
		{AccountID: s.reg.FeeIncome, Debit: decimal.Zero, Credit: req.Amount, Memo: "Service fee", CustomerID: &account.CustomerID},
	}
	source := domain.SourceRef{Module: "savings", EventType: "fee", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.Date, fmt.Sprintf("Service fee %s", account.Number), source, lines)
	if err != nil {
		return nil, err
	}

	entry, err := s.savingsRepo.ApplyWithdrawal(ctx, savingsID, req.Amount, bundle)
	if err != nil {
		logger.Error("Failed to charge savings fee", slog.String("savings_id", savingsID), slog.String("error", err.Error()))
		return nil, err
	}

	account.Balance = account.Balance.Sub(req.Amount)
	logger.Info("Savings fee charged",
		slog.String("savings_id", savingsID),
		slog.String("amount", req.Amount.String()),
		slog.String("entry_number", entry.EntryNumber),
	)
	return account, nil
}

func (s *savingsService) validateMovement(ctx context.Context, savingsID string, amount decimal.Decimal) (*domain.SavingsAccount, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.New(apperrors.CodeValidation, "amount must be positive, got %s", amount.String())
	}
	account, err := s.savingsRepo.FindSavingsByID(ctx, savingsID)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, apperrors.New(apperrors.CodeValidation, "savings account %s is inactive", account.Number)
	}
	return account, nil
}
