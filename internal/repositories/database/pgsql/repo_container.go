package pgsql

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto one pool.
// txTimeout bounds each transactional unit of work.
func NewRepositoryProvider(dbPool *pgxpool.Pool, txTimeout time.Duration) portsrepo.RepositoryProvider {
	base := BaseRepository{Pool: dbPool, TxTimeout: txTimeout}
	return portsrepo.RepositoryProvider{
		AccountRepo:   newPgxAccountRepository(base),
		JournalRepo:   newPgxJournalRepository(base),
		PeriodRepo:    newPgxPeriodRepository(base),
		ScheduleRepo:  newPgxScheduleRepository(base),
		LoanRepo:      newPgxLoanRepository(base),
		SavingsRepo:   newPgxSavingsRepository(base),
		DepositRepo:   newPgxDepositRepository(base),
		ReportingRepo: newPgxReportingRepository(base),
	}
}
