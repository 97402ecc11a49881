package services

// ServiceContainer holds instances of all the application services. It
// is the entry point for handlers.
type ServiceContainer struct {
	Account   AccountSvcFacade
	Posting   PostingSvcFacade
	Period    PeriodSvcFacade
	Reporting ReportingSvcFacade
	Loan      LoanSvcFacade
	Savings   SavingsSvcFacade
	Deposit   DepositSvcFacade
}
