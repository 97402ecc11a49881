package mapping

import (
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:       d.LoanID,
		CustomerID:   d.CustomerID,
		Principal:    d.Principal,
		AnnualRate:   d.AnnualRate,
		TenureMonths: d.TenureMonths,
		Method:       string(d.Method),
		DisbursedOn:  d.DisbursedOn,
		Status:       string(d.Status),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:       m.LoanID,
		CustomerID:   m.CustomerID,
		Principal:    m.Principal,
		AnnualRate:   m.AnnualRate,
		TenureMonths: m.TenureMonths,
		Method:       domain.InterestMethod(m.Method),
		DisbursedOn:  m.DisbursedOn,
		Status:       domain.LoanStatus(m.Status),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
