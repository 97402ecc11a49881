package accounting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sokofin/corebank/internal/core/domain"
)

func TestSignedDelta(t *testing.T) {
	debitLine := domain.JournalLine{Debit: decimal.NewFromInt(100)}
	creditLine := domain.JournalLine{Credit: decimal.NewFromInt(100)}

	// A debit grows a debit-side account and shrinks a credit-side one.
	assert.True(t, decimal.NewFromInt(100).Equal(SignedDelta(debitLine, domain.DebitSide)))
	assert.True(t, decimal.NewFromInt(-100).Equal(SignedDelta(debitLine, domain.CreditSide)))
	assert.True(t, decimal.NewFromInt(-100).Equal(SignedDelta(creditLine, domain.DebitSide)))
	assert.True(t, decimal.NewFromInt(100).Equal(SignedDelta(creditLine, domain.CreditSide)))
}

func TestBalanceChangesNetsPerAccount(t *testing.T) {
	accounts := map[string]domain.Account{
		"cash":    {AccountID: "cash", NormalSide: domain.DebitSide},
		"revenue": {AccountID: "revenue", NormalSide: domain.CreditSide},
	}
	lines := []domain.JournalLine{
		{AccountID: "cash", Debit: decimal.NewFromInt(300)},
		{AccountID: "cash", Credit: decimal.NewFromInt(50)},
		{AccountID: "revenue", Credit: decimal.NewFromInt(250)},
	}

	changes := BalanceChanges(lines, accounts)
	assert.Len(t, changes, 2)
	assert.True(t, decimal.NewFromInt(250).Equal(changes["cash"]), "two cash lines net to 250, got %s", changes["cash"])
	assert.True(t, decimal.NewFromInt(250).Equal(changes["revenue"]))
}

func TestMirrorLinesSwapsSides(t *testing.T) {
	customerID := "cust-1"
	lines := []domain.JournalLine{
		{LineID: "l1", EntryID: "e1", AccountID: "cash", Debit: decimal.NewFromInt(100), Memo: "receipt", CustomerID: &customerID},
		{LineID: "l2", EntryID: "e1", AccountID: "revenue", Credit: decimal.NewFromInt(100)},
	}

	mirrored := MirrorLines(lines)
	assert.Len(t, mirrored, 2)

	assert.True(t, mirrored[0].Debit.IsZero())
	assert.True(t, decimal.NewFromInt(100).Equal(mirrored[0].Credit))
	assert.Equal(t, "cash", mirrored[0].AccountID)
	assert.Equal(t, "receipt", mirrored[0].Memo)
	assert.Equal(t, &customerID, mirrored[0].CustomerID)

	// Mirrored lines get fresh identity from the caller.
	assert.Empty(t, mirrored[0].LineID)
	assert.Empty(t, mirrored[0].EntryID)

	assert.True(t, decimal.NewFromInt(100).Equal(mirrored[1].Debit))
	assert.True(t, mirrored[1].Credit.IsZero())

	// The mirror of a balanced entry is itself balanced.
	d1, c1 := EntryTotals(lines)
	d2, c2 := EntryTotals(mirrored)
	assert.True(t, d1.Equal(c2))
	assert.True(t, c1.Equal(d2))
}
