// Package registry resolves the GL account codes the workflow services
// post against. Resolution happens once at startup; a missing or
// unusable code is a configuration error and the process must not
// serve traffic without a complete registry.
package registry

import (
	"context"

	"github.com/sokofin/corebank/internal/apperrors"
	portrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
)

// Codes names the configured GL account codes, one per posting role.
type Codes struct {
	Cash            string
	LoansReceivable string
	InterestIncome  string
	SavingsControl  string
	DepositControl  string
	InterestExpense string
	FeeIncome       string
}

// Registry holds the resolved account IDs for each posting role.
type Registry struct {
	Cash            string
	LoansReceivable string
	InterestIncome  string
	SavingsControl  string
	DepositControl  string
	InterestExpense string
	FeeIncome       string
}

type roleBinding struct {
	role string
	code string
	dst  *string
}

// Resolve looks up every configured code and validates it is a live
// postable account. Any failure returns a CONFIG_ERROR naming the role.
func Resolve(ctx context.Context, repo portrepo.AccountRepository, codes Codes) (*Registry, error) {
	reg := &Registry{}
	bindings := []roleBinding{
		{"cash", codes.Cash, &reg.Cash},
		{"loans_receivable", codes.LoansReceivable, &reg.LoansReceivable},
		{"interest_income", codes.InterestIncome, &reg.InterestIncome},
		{"savings_control", codes.SavingsControl, &reg.SavingsControl},
		{"deposit_control", codes.DepositControl, &reg.DepositControl},
		{"interest_expense", codes.InterestExpense, &reg.InterestExpense},
		{"fee_income", codes.FeeIncome, &reg.FeeIncome},
	}

	for _, b := range bindings {
		if b.code == "" {
			return nil, apperrors.New(apperrors.CodeConfig, "gl account code for role %s is not configured", b.role)
		}
		account, err := repo.FindAccountByCode(ctx, b.code)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.CodeConfig, err, "gl account %s for role %s not found", b.code, b.role)
		}
		if !account.Postable() {
			return nil, apperrors.New(apperrors.CodeConfig, "gl account %s for role %s is not postable", b.code, b.role)
		}
		*b.dst = account.AccountID
	}
	return reg, nil
}
