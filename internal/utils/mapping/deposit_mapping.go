package mapping

import (
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelDeposit(d domain.FixedDeposit) models.FixedDeposit {
	return models.FixedDeposit{
		DepositID:       d.DepositID,
		CustomerID:      d.CustomerID,
		Number:          d.Number,
		Principal:       d.Principal,
		AnnualRate:      d.AnnualRate,
		TermMonths:      d.TermMonths,
		StartDate:       d.StartDate,
		MaturityDate:    d.MaturityDate,
		AccruedInterest: d.AccruedInterest,
		LastAccruedAt:   d.LastAccruedAt,
		Status:          string(d.Status),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainDeposit(m models.FixedDeposit) domain.FixedDeposit {
	return domain.FixedDeposit{
		DepositID:       m.DepositID,
		CustomerID:      m.CustomerID,
		Number:          m.Number,
		Principal:       m.Principal,
		AnnualRate:      m.AnnualRate,
		TermMonths:      m.TermMonths,
		StartDate:       m.StartDate,
		MaturityDate:    m.MaturityDate,
		AccruedInterest: m.AccruedInterest,
		LastAccruedAt:   m.LastAccruedAt,
		Status:          domain.DepositStatus(m.Status),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
