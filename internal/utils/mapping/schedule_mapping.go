package mapping

import (
	"github.com/sokofin/corebank/internal/core/domain"
	"github.com/sokofin/corebank/internal/models"
)

func ToModelScheduleEntry(d domain.ScheduleEntry) models.ScheduleEntry {
	return models.ScheduleEntry{
		ScheduleID:    d.ScheduleID,
		LoanID:        d.LoanID,
		InstallmentNo: d.InstallmentNo,
		DueDate:       d.DueDate,
		PrincipalDue:  d.PrincipalDue,
		InterestDue:   d.InterestDue,
		PrincipalPaid: d.PrincipalPaid,
		InterestPaid:  d.InterestPaid,
		Status:        models.ScheduleStatus(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainScheduleEntry(m models.ScheduleEntry) domain.ScheduleEntry {
	return domain.ScheduleEntry{
		ScheduleID:    m.ScheduleID,
		LoanID:        m.LoanID,
		InstallmentNo: m.InstallmentNo,
		DueDate:       m.DueDate,
		PrincipalDue:  m.PrincipalDue,
		InterestDue:   m.InterestDue,
		PrincipalPaid: m.PrincipalPaid,
		InterestPaid:  m.InterestPaid,
		Status:        domain.ScheduleStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainScheduleEntrySlice(ms []models.ScheduleEntry) []domain.ScheduleEntry {
	ds := make([]domain.ScheduleEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainScheduleEntry(m)
	}
	return ds
}
