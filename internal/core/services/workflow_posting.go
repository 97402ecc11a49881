package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/sokofin/corebank/internal/apperrors"
	"github.com/sokofin/corebank/internal/core/domain"
	portsrepo "github.com/sokofin/corebank/internal/core/ports/repositories"
	"github.com/sokofin/corebank/internal/utils/accounting"
)

// buildAutoPostBundle assembles the posting bundle for a workflow-generated
// entry. Registry accounts are re-validated here: resolution at startup
// does not stop an account from being deactivated later. The actor's
// approval limit gates the total, and the repository re-checks the period
// inside its transaction.
func buildAutoPostBundle(ctx context.Context, accountRepo portsrepo.AccountRepository, actor domain.Actor, entryDate time.Time, description string, source domain.SourceRef, lines []domain.JournalLine) (portsrepo.PostingBundle, error) {
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}

	accountIDs := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountID]; !ok {
			seen[line.AccountID] = struct{}{}
			accountIDs = append(accountIDs, line.AccountID)
		}
	}
	accounts, err := accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return portsrepo.PostingBundle{}, err
	}
	for _, id := range accountIDs {
		account, ok := accounts[id]
		if !ok {
			return portsrepo.PostingBundle{}, apperrors.New(apperrors.CodeInvalidAccount, "account %s does not exist", id)
		}
		if !account.Postable() {
			return portsrepo.PostingBundle{}, apperrors.New(apperrors.CodeInvalidAccount,
				"account %s (%s) does not accept postings", account.Code, id)
		}
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	if !actor.CanApprove(totalDebit) {
		return portsrepo.PostingBundle{}, apperrors.New(apperrors.CodeForbidden,
			"entry total %s exceeds approval limit of actor %s", totalDebit.String(), actor.ActorID)
	}
	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		Description: description,
		Status:      domain.Posted,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Source:      source,
		PostedBy:    &actor.ActorID,
		PostedAt:    &now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ActorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ActorID,
		},
	}

	return portsrepo.PostingBundle{
		Entry:   entry,
		Lines:   lines,
		Changes: accounting.BalanceChanges(lines, accounts),
		Post:    true,
	}, nil
}
