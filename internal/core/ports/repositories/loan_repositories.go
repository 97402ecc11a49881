package repositories

import (
	"context"

	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/utils/allocation"
)

// LoanRepository is the persistence port for loans. Creation and repayment
// couple loan/schedule state with their ledger posting in one transaction:
// the repayment has happened only if the entry posted.
type LoanRepository interface {
	// CreateLoan persists the loan, its full schedule, and the auto-posted
	// disbursement bundle as one unit.
	CreateLoan(ctx context.Context, loan domain.Loan, schedule []domain.ScheduleEntry, bundle PostingBundle) (*domain.JournalEntry, error)

	// ApplyRepayment applies the allocator's schedule updates and posts the
	// repayment bundle atomically. When closeLoan is set the loan row is
	// flipped to CLOSED in the same transaction.
	ApplyRepayment(ctx context.Context, loanID string, updates []allocation.ScheduleUpdate, bundle PostingBundle, closeLoan bool) (*domain.JournalEntry, error)

	FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error)
}
