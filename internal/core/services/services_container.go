package services

import (
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/registry"
)

// NewServiceContainer creates a service container with all dependencies
// wired. The account registry must already be resolved.
func NewServiceContainer(repos portsrepo.RepositoryProvider, reg *registry.Registry) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Posting = NewPostingService(repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo)
	container.Period = NewPeriodService(repos.PeriodRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.AccountRepo)
	container.Loan = NewLoanService(repos.LoanRepo, repos.ScheduleRepo, repos.AccountRepo, reg)
	container.Savings = NewSavingsService(repos.SavingsRepo, repos.AccountRepo, reg)
	container.Deposit = NewDepositService(repos.DepositRepo, repos.AccountRepo, reg)

	return container
}
