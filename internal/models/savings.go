package models

import "github.com/shopspring/decimal"

// SavingsAccount is the savings_accounts table row.
type SavingsAccount struct {
	SavingsID  string
	CustomerID string
	Number     string
	Balance    decimal.Decimal
	IsActive   bool
	AuditFields
}
