package mapping

import (
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:      d.AccountID,
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    models.AccountType(d.AccountType),
		NormalSide:     models.BalanceSide(d.NormalSide),
		IsActive:       d.IsActive,
		IsHeader:       d.IsHeader,
		OpeningBalance: d.OpeningBalance,
		Balance:        d.Balance,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		NormalSide:     domain.BalanceSide(m.NormalSide),
		IsActive:       m.IsActive,
		IsHeader:       m.IsHeader,
		OpeningBalance: m.OpeningBalance,
		Balance:        m.Balance,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}
