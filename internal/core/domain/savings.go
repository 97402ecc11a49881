package domain

import "github.com/shopspring/decimal"

// SavingsAccount is a customer savings position. Its balance is a
// liability-side mirror of the savings control GL account, maintained in
// the same atomic unit as each posting.
type SavingsAccount struct {
	SavingsID  string          `json:"savingsID"`
	CustomerID string          `json:"customerID"`
	Number     string          `json:"number"`
	Balance    decimal.Decimal `json:"balance"`
	IsActive   bool            `json:"isActive"`
	AuditFields
}
