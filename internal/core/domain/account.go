package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide is the side on which an account's balance naturally increases.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// NormalSideFor returns the conventional normal-balance side for a type.
func NormalSideFor(t AccountType) BalanceSide {
	switch t {
	case Asset, Expense:
		return DebitSide
	default:
		return CreditSide
	}
}

// Account is a node in the chart of accounts. The Code is the stable
// external key; workflow services never reference accounts any other way.
type Account struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	NormalSide     BalanceSide     `json:"normalSide"`
	IsActive       bool            `json:"isActive"`
	IsHeader       bool            `json:"isHeader"` // header accounts aggregate, never posted to
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"` // cached running balance, maintained by the posting engine
	AuditFields
}

// Postable reports whether journal lines may reference this account.
func (a Account) Postable() bool {
	return a.IsActive && !a.IsHeader
}
