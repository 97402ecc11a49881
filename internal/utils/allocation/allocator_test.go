package allocation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
)

var testAccounts = Accounts{
	CashAccountID:       "acc-cash",
	ReceivableAccountID: "acc-receivable",
	InterestAccountID:   "acc-interest",
}

func installment(no int, dueDate time.Time, principalDue, interestDue int64) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ScheduleID:    uuid.NewString(),
		LoanID:        "loan-1",
		InstallmentNo: no,
		DueDate:       dueDate,
		PrincipalDue:  decimal.NewFromInt(principalDue),
		InterestDue:   decimal.NewFromInt(interestDue),
		PrincipalPaid: decimal.Zero,
		InterestPaid:  decimal.Zero,
		Status:        domain.SchedulePending,
	}
}

func TestAllocateInterestBeforePrincipal(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{installment(1, due, 60000, 10000)}

	res, err := Allocate(decimal.NewFromInt(50000), entries, testAccounts, "loan-1", "cust-1")
	require.NoError(t, err)
	require.Len(t, res.Updates, 1)

	update := res.Updates[0]
	assert.True(t, decimal.NewFromInt(10000).Equal(update.InterestApplied), "interest settles first, got %s", update.InterestApplied)
	assert.True(t, decimal.NewFromInt(40000).Equal(update.PrincipalApplied), "remainder goes to principal, got %s", update.PrincipalApplied)
	assert.Equal(t, domain.SchedulePartial, update.NewStatus)

	assert.True(t, decimal.NewFromInt(10000).Equal(res.TotalInterest))
	assert.True(t, decimal.NewFromInt(40000).Equal(res.TotalPrincipal))
}

func TestAllocateOldestDueFirst(t *testing.T) {
	due1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	due2 := due1.AddDate(0, 1, 0)
	entries := []domain.ScheduleEntry{
		installment(1, due1, 20000, 2000),
		installment(2, due2, 20000, 1800),
	}

	// Enough to settle installment 1 fully and dent installment 2's interest.
	res, err := Allocate(decimal.NewFromInt(23000), entries, testAccounts, "loan-1", "cust-1")
	require.NoError(t, err)
	require.Len(t, res.Updates, 2)

	assert.Equal(t, 1, res.Updates[0].InstallmentNo)
	assert.Equal(t, domain.SchedulePaid, res.Updates[0].NewStatus)
	assert.True(t, decimal.NewFromInt(2000).Equal(res.Updates[0].InterestApplied))
	assert.True(t, decimal.NewFromInt(20000).Equal(res.Updates[0].PrincipalApplied))

	assert.Equal(t, 2, res.Updates[1].InstallmentNo)
	assert.Equal(t, domain.SchedulePartial, res.Updates[1].NewStatus)
	assert.True(t, decimal.NewFromInt(1000).Equal(res.Updates[1].InterestApplied), "second installment gets interest before principal")
	assert.True(t, res.Updates[1].PrincipalApplied.IsZero())
}

func TestAllocateDerivesBalancedLines(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{installment(1, due, 60000, 10000)}

	res, err := Allocate(decimal.NewFromInt(50000), entries, testAccounts, "loan-1", "cust-1")
	require.NoError(t, err)
	require.Len(t, res.Lines, 3)

	cash := res.Lines[0]
	assert.Equal(t, testAccounts.CashAccountID, cash.AccountID)
	assert.True(t, decimal.NewFromInt(50000).Equal(cash.Debit))
	assert.True(t, cash.Credit.IsZero())
	require.NotNil(t, cash.LoanID)
	assert.Equal(t, "loan-1", *cash.LoanID)

	totalCredit := decimal.Zero
	for _, line := range res.Lines[1:] {
		assert.True(t, line.Debit.IsZero())
		totalCredit = totalCredit.Add(line.Credit)
	}
	assert.True(t, cash.Debit.Equal(totalCredit), "lines must balance: debit %s, credits %s", cash.Debit, totalCredit)
}

func TestAllocateInterestOnlyPaymentOmitsPrincipalLine(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{installment(1, due, 60000, 10000)}

	res, err := Allocate(decimal.NewFromInt(10000), entries, testAccounts, "loan-1", "cust-1")
	require.NoError(t, err)
	assert.True(t, res.TotalPrincipal.IsZero())
	require.Len(t, res.Lines, 2)
	assert.Equal(t, testAccounts.InterestAccountID, res.Lines[1].AccountID)
}

func TestAllocatePartiallyPaidInstallment(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entry := installment(1, due, 20000, 2000)
	entry.InterestPaid = decimal.NewFromInt(2000)
	entry.PrincipalPaid = decimal.NewFromInt(5000)
	entry.Status = domain.SchedulePartial

	res, err := Allocate(decimal.NewFromInt(15000), []domain.ScheduleEntry{entry}, testAccounts, "loan-1", "cust-1")
	require.NoError(t, err)
	require.Len(t, res.Updates, 1)

	assert.True(t, res.Updates[0].InterestApplied.IsZero(), "interest already settled")
	assert.True(t, decimal.NewFromInt(15000).Equal(res.Updates[0].PrincipalApplied))
	assert.Equal(t, domain.SchedulePaid, res.Updates[0].NewStatus)
}

func TestAllocateRejectsNonPositivePayment(t *testing.T) {
	entries := []domain.ScheduleEntry{installment(1, time.Now(), 1000, 100)}

	_, err := Allocate(decimal.Zero, entries, testAccounts, "loan-1", "cust-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = Allocate(decimal.NewFromInt(-500), entries, testAccounts, "loan-1", "cust-1")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAllocateRejectsOverpayment(t *testing.T) {
	entries := []domain.ScheduleEntry{installment(1, time.Now(), 1000, 100)}

	_, err := Allocate(decimal.NewFromInt(1101), entries, testAccounts, "loan-1", "cust-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "exceeds total outstanding")
}

func TestAllocateExactPayoff(t *testing.T) {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.ScheduleEntry{
		installment(1, due, 20000, 2000),
		installment(2, due.AddDate(0, 1, 0), 20000, 1800),
	}

	res, err := Allocate(decimal.NewFromInt(43800), entries, testAccounts, "loan-1", "cust-1")
	require.NoError(t, err)
	require.Len(t, res.Updates, 2)
	for _, update := range res.Updates {
		assert.Equal(t, domain.SchedulePaid, update.NewStatus)
	}
	assert.True(t, decimal.NewFromInt(40000).Equal(res.TotalPrincipal))
	assert.True(t, decimal.NewFromInt(3800).Equal(res.TotalInterest))
}
