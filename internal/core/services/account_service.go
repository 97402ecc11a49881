package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/dto"
	"github.com/sokofin/corebank/internal/middleware"
)

// accountService manages the chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepository) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds an account to the chart of accounts. The normal
// side defaults to the conventional side for the account type.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, actor domain.Actor) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accountType := domain.AccountType(req.AccountType)
	normalSide := domain.NormalSideFor(accountType)
	if req.NormalSide != "" {
		normalSide = domain.BalanceSide(req.NormalSide)
	}
	if req.OpeningBalance.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "opening balance cannot be negative")
	}
	if req.IsHeader && !req.OpeningBalance.IsZero() {
		return nil, apperrors.New(apperrors.CodeValidation, "header accounts cannot carry an opening balance")
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		Code:           req.Code,
		Name:           req.Name,
		AccountType:    accountType,
		NormalSide:     normalSide,
		IsActive:       true,
		IsHeader:       req.IsHeader,
		OpeningBalance: req.OpeningBalance,
		Balance:        req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to create account", slog.String("code", req.Code), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, accountID)
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByCode(ctx, code)
}

func (s *accountService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, 500, 0)
}

// DeactivateAccount marks an account inactive. History is untouched; the
// account simply stops accepting new lines.
func (s *accountService) DeactivateAccount(ctx context.Context, accountID string, actor domain.Actor) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, actor.ActorID, time.Now()); err != nil {
		logger.Error("Failed to deactivate account", slog.String("account_id", accountID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
