package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/middleware"
)

// reportingService projects balances and statements from posted lines.
// It never reads the cached balance column except to reconcile it.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, accountRepo portsrepo.AccountRepository) portssvc.ReportingSvcFacade {
	return &reportingService{
		reportingRepo: reportingRepo,
		accountRepo:   accountRepo,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// signedBalance projects a balance from sums on the account's normal side.
func signedBalance(account domain.Account, debitSum, creditSum decimal.Decimal) decimal.Decimal {
	if account.NormalSide == domain.DebitSide {
		return account.OpeningBalance.Add(debitSum).Sub(creditSum)
	}
	return account.OpeningBalance.Add(creditSum).Sub(debitSum)
}

// GetAccountBalance computes an account's balance as of a date from its
// opening balance and posted lines.
func (s *reportingService) GetAccountBalance(ctx context.Context, accountID string, asOf time.Time) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	debitSum, creditSum, err := s.reportingRepo.SumPostedLines(ctx, accountID, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	return signedBalance(*account, debitSum, creditSum), nil
}

// ReconcileBalance recomputes an account's balance from posted lines and
// returns it alongside the cached running balance. The two must agree;
// a difference indicates the cache has drifted.
func (s *reportingService) ReconcileBalance(ctx context.Context, accountID string) (stored, computed decimal.Decimal, err error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	debitSum, creditSum, err := s.reportingRepo.SumPostedLines(ctx, accountID, time.Now())
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	computed = signedBalance(*account, debitSum, creditSum)

	if !account.Balance.Equal(computed) {
		middleware.GetLoggerFromCtx(ctx).Error("Balance reconciliation mismatch",
			slog.String("account_id", accountID),
			slog.String("stored", account.Balance.String()),
			slog.String("computed", computed.String()),
		)
	}
	return account.Balance, computed, nil
}

// GenerateTrialBalance produces the trial balance as of a date. Each
// account appears in the column of its normal side; a contra balance
// flips to the opposite column. Zero-balance accounts are excluded.
func (s *reportingService) GenerateTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalance, error) {
	activity, err := s.reportingRepo.TrialBalanceActivity(ctx, asOf)
	if err != nil {
		return nil, err
	}

	tb := &domain.TrialBalance{
		AsOf:        asOf,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for _, act := range activity {
		balance := signedBalance(act.Account, act.DebitSum, act.CreditSum)
		if balance.IsZero() {
			continue
		}

		row := domain.TrialBalanceRow{
			AccountID:   act.Account.AccountID,
			Code:        act.Account.Code,
			AccountName: act.Account.Name,
			AccountType: act.Account.AccountType,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}

		// A positive balance sits on the normal side, a negative one
		// flips to the other column as its absolute value.
		side := act.Account.NormalSide
		if balance.IsNegative() {
			balance = balance.Neg()
			if side == domain.DebitSide {
				side = domain.CreditSide
			} else {
				side = domain.DebitSide
			}
		}
		if side == domain.DebitSide {
			row.Debit = balance
			tb.TotalDebit = tb.TotalDebit.Add(balance)
		} else {
			row.Credit = balance
			tb.TotalCredit = tb.TotalCredit.Add(balance)
		}
		tb.Rows = append(tb.Rows, row)
	}

	if !tb.TotalDebit.Equal(tb.TotalCredit) {
		middleware.GetLoggerFromCtx(ctx).Error("Trial balance out of balance",
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()),
		)
	}
	return tb, nil
}

// GetLedger produces an account statement over [from, to] with a running
// balance after each line.
func (s *reportingService) GetLedger(ctx context.Context, accountID string, from, to time.Time) (*domain.AccountLedger, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	// Opening balance of the window is the balance just before from.
	openDebit, openCredit, err := s.reportingRepo.SumPostedLines(ctx, accountID, from.Add(-time.Nanosecond))
	if err != nil {
		return nil, err
	}
	opening := signedBalance(*account, openDebit, openCredit)

	lines, err := s.reportingRepo.LedgerLines(ctx, accountID, from, to)
	if err != nil {
		return nil, err
	}

	running := opening
	for i := range lines {
		delta := lines[i].Debit.Sub(lines[i].Credit)
		if account.NormalSide == domain.CreditSide {
			delta = delta.Neg()
		}
		running = running.Add(delta)
		lines[i].RunningBalance = running
	}

	return &domain.AccountLedger{
		AccountID:      account.AccountID,
		Code:           account.Code,
		From:           from,
		To:             to,
		OpeningBalance: opening,
		Lines:          lines,
		ClosingBalance: running,
	}, nil
}
