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

// depositService drives fixed deposits: funding, monthly interest
// accrual and payout at maturity.
type depositService struct {
	depositRepo portsrepo.DepositRepository
	accountRepo portsrepo.AccountRepository
	reg         *registry.Registry
}

// NewDepositService creates a new fixed deposit service.
func NewDepositService(depositRepo portsrepo.DepositRepository, accountRepo portsrepo.AccountRepository, reg *registry.Registry) portssvc.DepositSvcFacade {
	return &depositService{
		depositRepo: depositRepo,
		accountRepo: accountRepo,
		reg:         reg,
	}
}

var _ portssvc.DepositSvcFacade = (*depositService)(nil)

// CreateDeposit opens and funds a fixed deposit: debit cash, credit the
// deposit control liability, all in one transaction with the deposit row.
func (s *depositService) CreateDeposit(ctx context.Context, req dto.CreateDepositRequest, actor domain.Actor) (*domain.FixedDeposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.New(apperrors.CodeValidation, "principal must be positive, got %s", req.Principal.String())
	}
	if req.AnnualRate.IsNegative() {
		return nil, apperrors.New(apperrors.CodeValidation, "annual rate cannot be negative")
	}

	now := time.Now()
	deposit := domain.FixedDeposit{
		DepositID:       uuid.NewString(),
		CustomerID:      req.CustomerID,
		Number:          req.Number,
		Principal:       req.Principal,
		AnnualRate:      req.AnnualRate,
		TermMonths:      req.TermMonths,
		StartDate:       req.StartDate,
		MaturityDate:    req.StartDate.AddDate(0, req.TermMonths, 0),
		AccruedInterest: decimal.Zero,
		Status:          domain.DepositActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	lines := []domain.JournalLine{
		{AccountID: s.reg.Cash, Debit: req.Principal, Credit: decimal.Zero, Memo: "Fixed deposit funding", CustomerID: &deposit.CustomerID},
		{AccountID: s.reg.DepositControl, Debit: decimal.Zero, Credit: req.Principal, Memo: "Fixed deposit funding", CustomerID: &deposit.CustomerID},
	}
	source := domain.SourceRef{Module: "deposit", EventType: "funding", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.StartDate, fmt.Sprintf("Fixed deposit funding %s", deposit.Number), source, lines)
	if err != nil {
		return nil, err
	}

	entry, err := s.depositRepo.CreateDeposit(ctx, deposit, bundle)
	if err != nil {
		logger.Error("Failed to create fixed deposit", slog.String("reference", req.Reference), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Fixed deposit created",
		slog.String("deposit_id", deposit.DepositID),
		slog.String("principal", deposit.Principal.String()),
		slog.String("entry_number", entry.EntryNumber),
	)
	return &deposit, nil
}

func (s *depositService) GetDeposit(ctx context.Context, depositID string) (*domain.FixedDeposit, error) {
	return s.depositRepo.FindDepositByID(ctx, depositID)
}

// AccrueInterest posts one month of interest for every active deposit
// behind on accrual. Deposits past maturity are retired to MATURED and
// accrue nothing further. Each deposit is its own atomic unit; a failure
// is collected and the batch continues.
func (s *depositService) AccrueInterest(ctx context.Context, asOf time.Time, actor domain.Actor) (*dto.AccrualRunResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	matured, err := s.depositRepo.MarkMatured(ctx, asOf, actor.ActorID)
	if err != nil {
		return nil, err
	}

	deposits, err := s.depositRepo.ListAccruable(ctx, asOf)
	if err != nil {
		return nil, err
	}

	run := &dto.AccrualRunResponse{Matured: int(matured)}
	for _, deposit := range deposits {
		amount := deposit.MonthlyInterest()
		if amount.IsZero() {
			continue
		}

		lines := []domain.JournalLine{
			{AccountID: s.reg.InterestExpense, Debit: amount, Credit: decimal.Zero, Memo: "Deposit interest accrual", CustomerID: &deposit.CustomerID},
			{AccountID: s.reg.DepositControl, Debit: decimal.Zero, Credit: amount, Memo: "Deposit interest accrual", CustomerID: &deposit.CustomerID},
		}
		source := domain.SourceRef{
			Module:    "deposit",
			EventType: "accrual",
			Reference: fmt.Sprintf("%s-ACCR-%04d%02d", deposit.Number, asOf.Year(), int(asOf.Month())),
		}
		bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, asOf, fmt.Sprintf("Interest accrual %s", deposit.Number), source, lines)
		if err != nil {
			logger.Error("Failed to build accrual posting", slog.String("deposit_id", deposit.DepositID), slog.String("error", err.Error()))
			run.Failed = append(run.Failed, deposit.DepositID)
			continue
		}

		if _, err := s.depositRepo.ApplyAccrual(ctx, deposit.DepositID, amount, asOf, bundle); err != nil {
			logger.Error("Failed to apply accrual", slog.String("deposit_id", deposit.DepositID), slog.String("error", err.Error()))
			run.Failed = append(run.Failed, deposit.DepositID)
			continue
		}
		run.Accrued++
	}

	logger.Info("Accrual batch completed",
		slog.Int("accrued", run.Accrued),
		slog.Int("matured", run.Matured),
		slog.Int("failed", len(run.Failed)),
	)
	return run, nil
}

// Withdraw pays out principal plus accrued interest at or after maturity
// and closes the deposit.
func (s *depositService) Withdraw(ctx context.Context, depositID string, req dto.WithdrawDepositRequest, actor domain.Actor) (*domain.FixedDeposit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	deposit, err := s.depositRepo.FindDepositByID(ctx, depositID)
	if err != nil {
		return nil, err
	}
	if deposit.Status == domain.DepositWithdrawn {
		return nil, apperrors.New(apperrors.CodeValidation, "deposit %s is already withdrawn", deposit.Number)
	}
	if req.Date.Before(deposit.MaturityDate) {
		return nil, apperrors.New(apperrors.CodeValidation,
			"deposit %s matures on %s; early withdrawal is not supported", deposit.Number, deposit.MaturityDate.Format("2006-01-02"))
	}

	payout := deposit.Principal.Add(deposit.AccruedInterest)
	lines := []domain.JournalLine{
		{AccountID: s.reg.DepositControl, Debit: payout, Credit: decimal.Zero, Memo: "Fixed deposit payout", CustomerID: &deposit.CustomerID},
		{AccountID: s.reg.Cash, Debit: decimal.Zero, Credit: payout, Memo: "Fixed deposit payout", CustomerID: &deposit.CustomerID},
	}
	source := domain.SourceRef{Module: "deposit", EventType: "withdrawal", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.Date, fmt.Sprintf("Fixed deposit payout %s", deposit.Number), source, lines)
	if err != nil {
		return nil, err
	}

	entry, err := s.depositRepo.ApplyWithdrawal(ctx, depositID, domain.DepositWithdrawn, bundle)
	if err != nil {
		logger.Error("Failed to withdraw deposit", slog.String("deposit_id", depositID), slog.String("error", err.Error()))
		return nil, err
	}

	deposit.Status = domain.DepositWithdrawn
	logger.Info("Fixed deposit withdrawn",
		slog.String("deposit_id", depositID),
		slog.String("payout", payout.String()),
		slog.String("entry_number", entry.EntryNumber),
	)
	return deposit, nil
}
