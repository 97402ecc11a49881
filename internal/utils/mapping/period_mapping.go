package mapping

import (
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelPeriod(d domain.FinancialPeriod) models.FinancialPeriod {
	return models.FinancialPeriod{
		Year:        d.Year,
		Month:       int(d.Month),
		Status:      models.PeriodStatus(d.Status),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainPeriod(m models.FinancialPeriod) domain.FinancialPeriod {
	return domain.FinancialPeriod{
		Year:        m.Year,
		Month:       time.Month(m.Month),
		Status:      domain.PeriodStatus(m.Status),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
