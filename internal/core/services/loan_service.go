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
	"github.com/sokofin/corebank/internal/utils/allocation"
	"github.com/sokofin/corebank/internal/utils/amortization"
)

// loanService drives the loan lifecycle. Every state change posts its
// ledger entry in the same repository transaction.
type loanService struct {
	loanRepo     portsrepo.LoanRepository
	scheduleRepo portsrepo.ScheduleRepository
	accountRepo  portsrepo.AccountRepository
	reg          *registry.Registry
}

// NewLoanService creates a new loan service.
func NewLoanService(loanRepo portsrepo.LoanRepository, scheduleRepo portsrepo.ScheduleRepository, accountRepo portsrepo.AccountRepository, reg *registry.Registry) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:     loanRepo,
		scheduleRepo: scheduleRepo,
		accountRepo:  accountRepo,
		reg:          reg,
	}
}

var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// CreateLoan generates the amortization schedule and disburses the loan:
// loan row, schedule rows and the disbursement entry land in one
// transaction. A retried disbursement reference fails as a duplicate.
func (s *loanService) CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actor domain.Actor) (*domain.Loan, []domain.ScheduleEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	installments, err := amortization.Generate(amortization.Params{
		Principal:    req.Principal,
		AnnualRate:   req.AnnualRate,
		TenureMonths: req.TenureMonths,
		Method:       domain.InterestMethod(req.Method),
		FirstDueDate: req.DisbursedOn.AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor.ActorID,
		LastUpdatedAt: now,
		LastUpdatedBy: actor.ActorID,
	}

	loan := domain.Loan{
		LoanID:       uuid.NewString(),
		CustomerID:   req.CustomerID,
		Principal:    req.Principal,
		AnnualRate:   req.AnnualRate,
		TenureMonths: req.TenureMonths,
		Method:       domain.InterestMethod(req.Method),
		DisbursedOn:  req.DisbursedOn,
		Status:       domain.LoanActive,
		AuditFields:  audit,
	}

	schedule := make([]domain.ScheduleEntry, len(installments))
	for i, inst := range installments {
		schedule[i] = domain.ScheduleEntry{
			ScheduleID:    uuid.NewString(),
			LoanID:        loan.LoanID,
			InstallmentNo: inst.Number,
			DueDate:       inst.DueDate,
			PrincipalDue:  inst.PrincipalDue,
			InterestDue:   inst.InterestDue,
			PrincipalPaid: decimal.Zero,
			InterestPaid:  decimal.Zero,
			Status:        domain.SchedulePending,
			AuditFields:   audit,
		}
	}

	// Disbursement: debit loans receivable, credit cash.
	lines := []domain.JournalLine{
		{
			AccountID:  s.reg.LoansReceivable,
			Debit:      req.Principal,
			Credit:     decimal.Zero,
			Memo:       "Loan disbursement",
			CustomerID: &loan.CustomerID,
			LoanID:     &loan.LoanID,
		},
		{
			AccountID:  s.reg.Cash,
			Debit:      decimal.Zero,
			Credit:     req.Principal,
			Memo:       "Loan disbursement",
			CustomerID: &loan.CustomerID,
			LoanID:     &loan.LoanID,
		},
	}
	source := domain.SourceRef{Module: "loan", EventType: "disbursement", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.DisbursedOn, fmt.Sprintf("Loan disbursement %s", loan.LoanID), source, lines)
	if err != nil {
		return nil, nil, err
	}

	entry, err := s.loanRepo.CreateLoan(ctx, loan, schedule, bundle)
	if err != nil {
		logger.Error("Failed to create loan", slog.String("reference", req.Reference), slog.String("error", err.Error()))
		return nil, nil, err
	}

	logger.Info("Loan disbursed",
		slog.String("loan_id", loan.LoanID),
		slog.String("principal", loan.Principal.String()),
		slog.String("entry_number", entry.EntryNumber),
	)
	return &loan, schedule, nil
}

// RepayLoan allocates a payment oldest-due-first, interest before
// principal, and posts the repayment entry atomically with the schedule
// update. A repeated receipt reference fails as a duplicate and applies
// nothing.
func (s *loanService) RepayLoan(ctx context.Context, loanID string, req dto.RepayLoanRequest, actor domain.Actor) (*dto.RepaymentResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if loan.Status != domain.LoanActive {
		return nil, apperrors.New(apperrors.CodeValidation, "loan %s is %s", loanID, loan.Status)
	}

	outstanding, err := s.scheduleRepo.FindOutstandingByLoanID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if len(outstanding) == 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "loan %s has no outstanding installments", loanID)
	}

	result, err := allocation.Allocate(req.Amount, outstanding, allocation.Accounts{
		CashAccountID:       s.reg.Cash,
		ReceivableAccountID: s.reg.LoansReceivable,
		InterestAccountID:   s.reg.InterestIncome,
	}, loanID, loan.CustomerID)
	if err != nil {
		return nil, err
	}

	totalOutstanding := decimal.Zero
	for _, entry := range outstanding {
		totalOutstanding = totalOutstanding.Add(entry.Outstanding())
	}
	closeLoan := req.Amount.Equal(totalOutstanding)

	source := domain.SourceRef{Module: "loan", EventType: "repayment", Reference: req.Reference}
	bundle, err := buildAutoPostBundle(ctx, s.accountRepo, actor, req.PaymentDate, fmt.Sprintf("Loan repayment %s", loanID), source, result.Lines)
	if err != nil {
		return nil, err
	}

	entry, err := s.loanRepo.ApplyRepayment(ctx, loanID, result.Updates, bundle, closeLoan)
	if err != nil {
		logger.Error("Failed to apply repayment",
			slog.String("loan_id", loanID),
			slog.String("reference", req.Reference),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	logger.Info("Loan repayment applied",
		slog.String("loan_id", loanID),
		slog.String("amount", req.Amount.String()),
		slog.String("interest", result.TotalInterest.String()),
		slog.String("principal", result.TotalPrincipal.String()),
		slog.Bool("loan_closed", closeLoan),
	)
	return &dto.RepaymentResponse{
		LoanID:         loanID,
		EntryID:        entry.EntryID,
		EntryNumber:    entry.EntryNumber,
		AmountReceived: req.Amount,
		PrincipalPaid:  result.TotalPrincipal,
		InterestPaid:   result.TotalInterest,
	}, nil
}

// GetLoan retrieves a loan with its schedule.
func (s *loanService) GetLoan(ctx context.Context, loanID string) (*domain.Loan, []domain.ScheduleEntry, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	schedule, err := s.scheduleRepo.FindScheduleByLoanID(ctx, loanID)
	if err != nil {
		return nil, nil, err
	}
	return loan, schedule, nil
}

// MarkOverdueSchedules flips unpaid installments past due to OVERDUE,
// one loan at a time: a failure on one loan is logged and the batch
// moves on.
func (s *loanService) MarkOverdueSchedules(ctx context.Context, asOf time.Time, actor domain.Actor) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	loanIDs, err := s.scheduleRepo.ListLoanIDsWithDueBefore(ctx, asOf)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, loanID := range loanIDs {
		n, err := s.scheduleRepo.MarkOverdue(ctx, loanID, asOf, actor.ActorID)
		if err != nil {
			logger.Error("Failed to mark overdue installments", slog.String("loan_id", loanID), slog.String("error", err.Error()))
			continue
		}
		total += n
	}

	logger.Info("Overdue sweep completed", slog.Int("loans", len(loanIDs)), slog.Int64("installments_marked", total))
	return total, nil
}
