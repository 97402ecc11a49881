package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	portssvc "github.com/sokofin/corebank/internal/core/ports/services"
	"github.com/sokofin/corebank/internal/middleware"
	"github.com/sokofin/corebank/internal/utils/accounting"
)

// postingService implements the journal posting engine: submission,
// approval posting and reversal. All writes go through the journal
// repository as single-transaction bundles.
type postingService struct {
	journalRepo portsrepo.JournalRepository
	accountRepo portsrepo.AccountRepository
	periodRepo  portsrepo.PeriodRepository
}

// NewPostingService creates a new posting service.
func NewPostingService(journalRepo portsrepo.JournalRepository, accountRepo portsrepo.AccountRepository, periodRepo portsrepo.PeriodRepository) portssvc.PostingSvcFacade {
	return &postingService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		periodRepo:  periodRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// checkPeriodOpen rejects any write dated in a closed period. SOFT_CLOSE
// blocks new submissions; HARD_CLOSE blocks everything. Posting an
// existing draft is allowed under SOFT_CLOSE so a period can be fully
// posted before its hard close.
func (s *postingService) checkPeriodOpen(ctx context.Context, date time.Time, allowSoftClose bool) error {
	year, month := domain.PeriodKeyFor(date)
	period, err := s.periodRepo.FindPeriod(ctx, year, month)
	if err != nil {
		return err
	}
	if period == nil {
		return nil // untracked periods are open
	}
	switch period.Status {
	case domain.PeriodOpen:
		return nil
	case domain.PeriodSoftClose:
		if allowSoftClose {
			return nil
		}
		return apperrors.New(apperrors.CodePeriodClosed, "period %s is soft-closed to new entries", period.Label())
	default:
		return apperrors.New(apperrors.CodePeriodClosed, "period %s is hard-closed", period.Label())
	}
}

// validateLines enforces the structural posting rules and returns the
// affected accounts keyed by ID.
func (s *postingService) validateLines(ctx context.Context, lines []domain.JournalLine) (map[string]domain.Account, error) {
	if len(lines) < 2 {
		return nil, apperrors.New(apperrors.CodeValidation, "entry must have at least two lines")
	}

	zero := decimal.Zero
	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for i, line := range lines {
		debitSet := line.Debit.GreaterThan(zero)
		creditSet := line.Credit.GreaterThan(zero)
		if line.Debit.LessThan(zero) || line.Credit.LessThan(zero) {
			return nil, apperrors.New(apperrors.CodeValidation, "line %d has a negative amount", i+1)
		}
		if debitSet == creditSet {
			return nil, apperrors.New(apperrors.CodeValidation, "line %d must have exactly one of debit or credit positive", i+1)
		}
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	if !totalDebit.Equal(totalCredit) {
		return nil, apperrors.New(apperrors.CodeUnbalancedEntry,
			"entry does not balance: total debit %s, total credit %s", totalDebit.String(), totalCredit.String())
	}
	if totalDebit.IsZero() {
		return nil, apperrors.New(apperrors.CodeZeroValueEntry, "entry has zero total value")
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return nil, apperrors.New(apperrors.CodeInvalidAccount, "account %s does not exist", id)
		}
		if !account.Postable() {
			return nil, apperrors.New(apperrors.CodeInvalidAccount, "account %s (%s) does not accept postings", account.Code, id)
		}
	}
	return accounts, nil
}

// SubmitEntry validates a posting request and persists it. With AutoPost
// the entry lands POSTED and balances move in the same transaction;
// otherwise it lands DRAFT with no balance effect.
func (s *postingService) SubmitEntry(ctx context.Context, input portssvc.SubmitEntryInput, actor domain.Actor) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if input.Source.Reference == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "source reference is required")
	}
	if err := s.checkPeriodOpen(ctx, input.EntryDate, false); err != nil {
		return nil, err
	}
	accounts, err := s.validateLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	totalDebit, totalCredit := accounting.EntryTotals(input.Lines)
	if input.AutoPost && !actor.CanApprove(totalDebit) {
		return nil, apperrors.New(apperrors.CodeForbidden,
			"entry total %s exceeds approval limit of actor %s", totalDebit.String(), actor.ActorID)
	}

	now := time.Now()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   input.EntryDate,
		Description: input.Description,
		Status:      domain.Draft,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Source:      input.Source,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	lines := make([]domain.JournalLine, len(input.Lines))
	for i, line := range input.Lines {
		line.LineID = uuid.NewString()
		line.EntryID = entryID
		lines[i] = line
	}

	bundle := portsrepo.PostingBundle{
		Entry: entry,
		Lines: lines,
		Post:  input.AutoPost,
	}
	if input.AutoPost {
		bundle.Entry.Status = domain.Posted
		bundle.Entry.PostedBy = &actor.ActorID
		bundle.Entry.PostedAt = &now
		bundle.Changes = accounting.BalanceChanges(lines, accounts)
	}

	saved, err := s.journalRepo.CreateEntry(ctx, bundle)
	if err != nil {
		logger.Error("Failed to persist journal entry", slog.String("reference", input.Source.Reference), slog.String("error", err.Error()))
		return nil, err
	}
	saved.Lines = lines

	logger.Info("Journal entry created",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.EntryNumber),
		slog.String("status", string(saved.Status)),
		slog.String("total", totalDebit.String()),
	)
	return saved, nil
}

// PostEntry transitions a draft to POSTED. The approver must differ from
// the creator and have sufficient approval limit; the entry's period is
// re-checked at posting time.
func (s *postingService) PostEntry(ctx context.Context, entryID string, actor domain.Actor) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.Posted {
		return nil, apperrors.New(apperrors.CodeValidation, "entry %s is already posted", entry.EntryNumber)
	}
	if entry.CreatedBy == actor.ActorID {
		return nil, apperrors.New(apperrors.CodeForbidden, "entry %s cannot be approved by its creator", entry.EntryNumber)
	}
	if !actor.CanApprove(entry.TotalDebit) {
		return nil, apperrors.New(apperrors.CodeForbidden,
			"entry total %s exceeds approval limit of actor %s", entry.TotalDebit.String(), actor.ActorID)
	}
	if err := s.checkPeriodOpen(ctx, entry.EntryDate, true); err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.validateLines(ctx, lines)
	if err != nil {
		return nil, err
	}
	changes := accounting.BalanceChanges(lines, accounts)

	now := time.Now()
	if err := s.journalRepo.PostEntry(ctx, entryID, changes, actor.ActorID, now); err != nil {
		logger.Error("Failed to post entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedBy = &actor.ActorID
	entry.PostedAt = &now
	entry.Lines = lines

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("entry_number", entry.EntryNumber))
	return entry, nil
}

// ReverseEntry posts a mirror-image of a posted entry and links the
// pair. The original must be POSTED and not already reversed; reversal
// entries themselves cannot be reversed again, the correct fix for a bad
// reversal is a fresh entry.
func (s *postingService) ReverseEntry(ctx context.Context, entryID string, reason string, effectiveDate *time.Time, actor domain.Actor) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if original.Status != domain.Posted {
		return nil, apperrors.New(apperrors.CodeNotPosted, "entry %s is not posted", original.EntryNumber)
	}
	if original.Reversed {
		return nil, apperrors.New(apperrors.CodeAlreadyReversed, "entry %s is already reversed", original.EntryNumber)
	}
	if original.IsReversal() {
		return nil, apperrors.New(apperrors.CodeValidation, "entry %s is itself a reversal; post a new correcting entry instead", original.EntryNumber)
	}

	reversalDate := time.Now()
	if effectiveDate != nil {
		reversalDate = *effectiveDate
	}
	if err := s.checkPeriodOpen(ctx, reversalDate, true); err != nil {
		return nil, err
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	mirrored := accounting.MirrorLines(originalLines)

	accountIDs := make([]string, 0, len(mirrored))
	seen := make(map[string]struct{}, len(mirrored))
	for _, line := range mirrored {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reversalID := uuid.NewString()
	for i := range mirrored {
		mirrored[i].LineID = uuid.NewString()
		mirrored[i].EntryID = reversalID
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		EntryDate:       reversalDate,
		Description:     fmt.Sprintf("Reversal of %s: %s", original.EntryNumber, reason),
		Status:          domain.Posted,
		ReversedEntryID: &original.EntryID,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		Source: domain.SourceRef{
			Module:    original.Source.Module,
			EventType: "reversal",
			Reference: original.Source.Reference + "-REV",
		},
		PostedBy: &actor.ActorID,
		PostedAt: &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	bundle := portsrepo.PostingBundle{
		Entry:   reversal,
		Lines:   mirrored,
		Changes: accounting.BalanceChanges(mirrored, accounts),
		Post:    true,
	}

	saved, err := s.journalRepo.ReverseEntry(ctx, original.EntryID, bundle)
	if err != nil {
		logger.Error("Failed to reverse entry", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}
	saved.Lines = mirrored

	logger.Info("Journal entry reversed",
		slog.String("original_entry_id", original.EntryID),
		slog.String("reversal_entry_id", saved.EntryID),
	)
	return saved, nil
}

// GetEntryByID retrieves an entry with its lines.
func (s *postingService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}
