package repositories

import (
	"context"
	"time"

	"github.com/sokofin/corebank/internal/core/domain"
)

// AccountRepository is the persistence port for the chart of accounts.
// Balance mutation is deliberately absent here: cached balances are written
// only inside posting transactions owned by the journal-side repositories.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, accountID, actorID string, now time.Time) error
}
