package mapping

import (
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelSavings(d domain.SavingsAccount) models.SavingsAccount {
	return models.SavingsAccount{
		SavingsID:   d.SavingsID,
		CustomerID:  d.CustomerID,
		Number:      d.Number,
		Balance:     d.Balance,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainSavings(m models.SavingsAccount) domain.SavingsAccount {
	return domain.SavingsAccount{
		SavingsID:   m.SavingsID,
		CustomerID:  m.CustomerID,
		Number:      m.Number,
		Balance:     m.Balance,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
