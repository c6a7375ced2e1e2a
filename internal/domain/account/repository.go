package account

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, a *Account) error

	// Get by public account_id; gorm.ErrRecordNotFound when absent
	GetByAccountID(ctx context.Context, accountID string) (*Account, error)

	// Compare-and-swap on version. Only the ledger usecase may call these.
	SwapBalance(ctx context.Context, accountID string, version uint64, balance decimal.Decimal) (bool, error)
	SwapStatus(ctx context.Context, accountID string, version uint64, status Status) (bool, error)

	AppendEntry(ctx context.Context, e *LedgerEntry) error
	ListEntries(ctx context.Context, accountID string, limit int) ([]LedgerEntry, error)
	SumEntries(ctx context.Context, accountID string) (EntryTotals, error)
}
