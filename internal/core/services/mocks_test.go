package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/utils/allocation"
)

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepository = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID, actorID string, now time.Time) error {
	args := m.Called(ctx, accountID, actorID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepository = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) CreateEntry(ctx context.Context, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, entryID string, changes map[string]decimal.Decimal, approverID string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, changes, approverID, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) ReverseEntry(ctx context.Context, originalEntryID string, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, originalEntryID, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepository = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) FindPeriod(ctx context.Context, year int, month time.Month) (*domain.FinancialPeriod, error) {
	args := m.Called(ctx, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context) ([]domain.FinancialPeriod, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FinancialPeriod), args.Error(1)
}

func (m *MockPeriodRepository) UpsertPeriodStatus(ctx context.Context, period domain.FinancialPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) CountUnpostedInPeriod(ctx context.Context, year int, month time.Month) (int, error) {
	args := m.Called(ctx, year, month)
	return args.Int(0), args.Error(1)
}

// --- Mock LoanRepository ---

type MockLoanRepository struct {
	mock.Mock
}

var _ portsrepo.LoanRepository = (*MockLoanRepository)(nil)

func (m *MockLoanRepository) CreateLoan(ctx context.Context, loan domain.Loan, schedule []domain.ScheduleEntry, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, loan, schedule, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLoanRepository) ApplyRepayment(ctx context.Context, loanID string, updates []allocation.ScheduleUpdate, bundle portsrepo.PostingBundle, closeLoan bool) (*domain.JournalEntry, error) {
	args := m.Called(ctx, loanID, updates, bundle, closeLoan)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLoanRepository) FindLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}

// --- Mock ScheduleRepository ---

type MockScheduleRepository struct {
	mock.Mock
}

var _ portsrepo.ScheduleRepository = (*MockScheduleRepository)(nil)

func (m *MockScheduleRepository) FindScheduleByLoanID(ctx context.Context, loanID string) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) FindOutstandingByLoanID(ctx context.Context, loanID string) ([]domain.ScheduleEntry, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleEntry), args.Error(1)
}

func (m *MockScheduleRepository) MarkOverdue(ctx context.Context, loanID string, asOf time.Time, actorID string) (int64, error) {
	args := m.Called(ctx, loanID, asOf, actorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockScheduleRepository) ListLoanIDsWithDueBefore(ctx context.Context, asOf time.Time) ([]string, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock SavingsRepository ---

type MockSavingsRepository struct {
	mock.Mock
}

var _ portsrepo.SavingsRepository = (*MockSavingsRepository)(nil)

func (m *MockSavingsRepository) CreateSavingsAccount(ctx context.Context, account domain.SavingsAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockSavingsRepository) FindSavingsByID(ctx context.Context, savingsID string) (*domain.SavingsAccount, error) {
	args := m.Called(ctx, savingsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SavingsAccount), args.Error(1)
}

func (m *MockSavingsRepository) ApplyDeposit(ctx context.Context, savingsID string, amount decimal.Decimal, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, savingsID, amount, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockSavingsRepository) ApplyWithdrawal(ctx context.Context, savingsID string, amount decimal.Decimal, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, savingsID, amount, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock DepositRepository ---

type MockDepositRepository struct {
	mock.Mock
}

var _ portsrepo.DepositRepository = (*MockDepositRepository)(nil)

func (m *MockDepositRepository) CreateDeposit(ctx context.Context, deposit domain.FixedDeposit, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, deposit, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockDepositRepository) FindDepositByID(ctx context.Context, depositID string) (*domain.FixedDeposit, error) {
	args := m.Called(ctx, depositID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FixedDeposit), args.Error(1)
}

func (m *MockDepositRepository) ListAccruable(ctx context.Context, asOf time.Time) ([]domain.FixedDeposit, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FixedDeposit), args.Error(1)
}

func (m *MockDepositRepository) MarkMatured(ctx context.Context, asOf time.Time, actorID string) (int64, error) {
	args := m.Called(ctx, asOf, actorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDepositRepository) ApplyAccrual(ctx context.Context, depositID string, amount decimal.Decimal, accruedAt time.Time, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, depositID, amount, accruedAt, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockDepositRepository) ApplyWithdrawal(ctx context.Context, depositID string, status domain.DepositStatus, bundle portsrepo.PostingBundle) (*domain.JournalEntry, error) {
	args := m.Called(ctx, depositID, status, bundle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) SumPostedLines(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, accountID, asOf)
	if args.Get(0) == nil {
		return decimal.Zero, decimal.Zero, args.Error(2)
	}
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) TrialBalanceActivity(ctx context.Context, asOf time.Time) ([]portsrepo.AccountActivity, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]portsrepo.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) LedgerLines(ctx context.Context, accountID string, from, to time.Time) ([]domain.LedgerLine, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerLine), args.Error(1)
}
