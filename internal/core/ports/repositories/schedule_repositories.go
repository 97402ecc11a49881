package repositories

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
)

// ScheduleRepository is the read/maintenance port for loan schedules.
// Schedule rows are inserted by LoanRepository.CreateLoan and their paid
// counters mutated only by LoanRepository.ApplyRepayment, so those writes
// share the loan's posting transaction.
type ScheduleRepository interface {
	FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.ScheduleEntry, error)

	// FindOutstandingByLoanID returns unpaid installments oldest-due-first.
	FindOutstandingByLoanID(ctx context.Context, loanID string) ([]domain.ScheduleEntry, error)

	// MarkOverdue flips unpaid installments past their due date to OVERDUE,
	// one statement per loan so a failure never touches other loans.
	// Returns the number of installments flipped.
	MarkOverdue(ctx context.Context, loanID string, asOf time.Time, actorID string) (int64, error)

	// ListLoanIDsWithDueBefore lists loans holding unpaid installments due
	// before asOf, for the overdue batch to iterate per loan.
	ListLoanIDsWithDueBefore(ctx context.Context, asOf time.Time) ([]string, error)
}
