package dto

import (
	"github.com/shopspring/decimal"
	"github.com/sokofin/corebank/internal/core/domain"
)

// CreateAccountRequest adds an account to the chart of accounts. When
// NormalSide is omitted it defaults to the conventional side for the type.
type CreateAccountRequest struct {
	Code           string          `json:"code" binding:"required"`
	Name           string          `json:"name" binding:"required"`
	AccountType    string          `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	NormalSide     string          `json:"normalSide" binding:"omitempty,oneof=DEBIT CREDIT"`
	IsHeader       bool            `json:"isHeader"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
}

// AccountResponse mirrors a chart-of-accounts entry.
type AccountResponse struct {
	AccountID      string          `json:"accountID"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	AccountType    string          `json:"accountType"`
	NormalSide     string          `json:"normalSide"`
	IsActive       bool            `json:"isActive"`
	IsHeader       bool            `json:"isHeader"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Balance        decimal.Decimal `json:"balance"`
}

func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		Code:           a.Code,
		Name:           a.Name,
		AccountType:    string(a.AccountType),
		NormalSide:     string(a.NormalSide),
		IsActive:       a.IsActive,
		IsHeader:       a.IsHeader,
		OpeningBalance: a.OpeningBalance,
		Balance:        a.Balance,
	}
}

func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	resp := make([]AccountResponse, len(accounts))
	for i := range accounts {
		resp[i] = ToAccountResponse(&accounts[i])
	}
	return resp
}
