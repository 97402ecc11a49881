package registry_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/registry"
)

type MockAccountRepository struct {
	mock.Mock
}

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

func allCodes() registry.Codes {
	return registry.Codes{
		Cash:            "1000",
		LoansReceivable: "1100",
		InterestIncome:  "4100",
		SavingsControl:  "2100",
		DepositControl:  "2200",
		InterestExpense: "5100",
		FeeIncome:       "4200",
	}
}

func postableAccount(code string) *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		Code:        code,
		NormalSide:  domain.DebitSide,
		AccountType: domain.Asset,
		IsActive:    true,
	}
}

func TestResolve_Success(t *testing.T) {
	repo := new(MockAccountRepository)
	codes := allCodes()
	expected := map[string]string{} // code -> account ID
	for _, code := range []string{codes.Cash, codes.LoansReceivable, codes.InterestIncome, codes.SavingsControl, codes.DepositControl, codes.InterestExpense, codes.FeeIncome} {
		account := postableAccount(code)
		expected[code] = account.AccountID
		repo.On("FindAccountByCode", mock.Anything, code).Return(account, nil).Once()
	}

	reg, err := registry.Resolve(context.Background(), repo, codes)

	require.NoError(t, err)
	assert.Equal(t, expected[codes.Cash], reg.Cash)
	assert.Equal(t, expected[codes.LoansReceivable], reg.LoansReceivable)
	assert.Equal(t, expected[codes.InterestIncome], reg.InterestIncome)
	assert.Equal(t, expected[codes.SavingsControl], reg.SavingsControl)
	assert.Equal(t, expected[codes.DepositControl], reg.DepositControl)
	assert.Equal(t, expected[codes.InterestExpense], reg.InterestExpense)
	assert.Equal(t, expected[codes.FeeIncome], reg.FeeIncome)
	repo.AssertExpectations(t)
}

func TestResolve_MissingCode(t *testing.T) {
	repo := new(MockAccountRepository)
	codes := allCodes()
	codes.SavingsControl = ""
	repo.On("FindAccountByCode", mock.Anything, mock.Anything).Return(postableAccount("x"), nil)

	_, err := registry.Resolve(context.Background(), repo, codes)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
	assert.Contains(t, err.Error(), "savings_control")
}

func TestResolve_UnknownAccount(t *testing.T) {
	repo := new(MockAccountRepository)
	codes := allCodes()
	repo.On("FindAccountByCode", mock.Anything, codes.Cash).Return(nil, apperrors.ErrNotFound).Once()

	_, err := registry.Resolve(context.Background(), repo, codes)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
	assert.Contains(t, err.Error(), "cash")
}

func TestResolve_HeaderAccountRejected(t *testing.T) {
	repo := new(MockAccountRepository)
	codes := allCodes()
	header := postableAccount(codes.Cash)
	header.IsHeader = true
	repo.On("FindAccountByCode", mock.Anything, codes.Cash).Return(header, nil).Once()

	_, err := registry.Resolve(context.Background(), repo, codes)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
	assert.Contains(t, err.Error(), "not postable")
}

func TestResolve_InactiveAccountRejected(t *testing.T) {
	repo := new(MockAccountRepository)
	codes := allCodes()
	inactive := postableAccount(codes.Cash)
	inactive.IsActive = false
	repo.On("FindAccountByCode", mock.Anything, codes.Cash).Return(inactive, nil).Once()

	_, err := registry.Resolve(context.Background(), repo, codes)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfig)
}
