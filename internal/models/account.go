package models

import "github.com/shopspring/decimal"

// AccountType mirrors domain.AccountType for persistence.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// BalanceSide mirrors domain.BalanceSide.
type BalanceSide string

const (
	DebitSide  BalanceSide = "DEBIT"
	CreditSide BalanceSide = "CREDIT"
)

// Account is the accounts table row.
type Account struct {
	AccountID      string
	Code           string
	Name           string
	AccountType    AccountType
	NormalSide     BalanceSide
	IsActive       bool
	IsHeader       bool
	OpeningBalance decimal.Decimal
	Balance        decimal.Decimal
	AuditFields
}
