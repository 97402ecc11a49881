package repositories

// RepositoryProvider bundles every repository implementation the service
// layer needs.
type RepositoryProvider struct {
	AccountRepo   AccountRepository
	JournalRepo   JournalRepository
	PeriodRepo    PeriodRepository
	ScheduleRepo  ScheduleRepository
	LoanRepo      LoanRepository
	SavingsRepo   SavingsRepository
	DepositRepo   DepositRepository
	ReportingRepo ReportingRepository
}
