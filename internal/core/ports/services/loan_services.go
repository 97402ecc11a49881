package services

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/dto"
)

// LoanSvcFacade defines loan lifecycle operations. Each state change
// posts its journal entry in the same unit of work.
type LoanSvcFacade interface {
	// CreateLoan disburses a loan: generates the amortization schedule and
	// posts the disbursement entry atomically with the loan record.
	CreateLoan(ctx context.Context, req dto.CreateLoanRequest, actor domain.Actor) (*domain.Loan, []domain.ScheduleEntry, error)

	// RepayLoan allocates a payment across due installments oldest first,
	// interest before principal, and posts the repayment entry. A repeated
	// receipt reference returns ErrDuplicate without double-applying.
	RepayLoan(ctx context.Context, loanID string, req dto.RepayLoanRequest, actor domain.Actor) (*dto.RepaymentResponse, error)

	// GetLoan retrieves a loan with its schedule.
	GetLoan(ctx context.Context, loanID string) (*domain.Loan, []domain.ScheduleEntry, error)

	// MarkOverdueSchedules flags unpaid installments due before asOf as
	// OVERDUE across all active loans and returns the count updated.
	MarkOverdueSchedules(ctx context.Context, asOf time.Time, actor domain.Actor) (int64, error)
}
