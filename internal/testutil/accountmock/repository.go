package accountmock

import (
	"context"

	"github.com/shopspring/decimal"

	"fleet-fuel-backend/internal/domain/account"
)

var _ account.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies account.Repository.
// Writes default to success, reads to context.Canceled.
type Repo struct {
	CreateFn         func(ctx context.Context, a *account.Account) error
	GetByAccountIDFn func(ctx context.Context, accountID string) (*account.Account, error)
	SwapBalanceFn    func(ctx context.Context, accountID string, version uint64, balance decimal.Decimal) (bool, error)
	SwapStatusFn     func(ctx context.Context, accountID string, version uint64, status account.Status) (bool, error)
	AppendEntryFn    func(ctx context.Context, e *account.LedgerEntry) error
	ListEntriesFn    func(ctx context.Context, accountID string, limit int) ([]account.LedgerEntry, error)
	SumEntriesFn     func(ctx context.Context, accountID string) (account.EntryTotals, error)
}

func (m *Repo) Create(ctx context.Context, a *account.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByAccountID(ctx context.Context, accountID string) (*account.Account, error) {
	if m.GetByAccountIDFn != nil {
		return m.GetByAccountIDFn(ctx, accountID)
	}
	return nil, context.Canceled
}

func (m *Repo) SwapBalance(ctx context.Context, accountID string, version uint64, balance decimal.Decimal) (bool, error) {
	if m.SwapBalanceFn != nil {
		return m.SwapBalanceFn(ctx, accountID, version, balance)
	}
	return true, nil
}

func (m *Repo) SwapStatus(ctx context.Context, accountID string, version uint64, status account.Status) (bool, error) {
	if m.SwapStatusFn != nil {
		return m.SwapStatusFn(ctx, accountID, version, status)
	}
	return true, nil
}

func (m *Repo) AppendEntry(ctx context.Context, e *account.LedgerEntry) error {
	if m.AppendEntryFn != nil {
		return m.AppendEntryFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListEntries(ctx context.Context, accountID string, limit int) ([]account.LedgerEntry, error) {
	if m.ListEntriesFn != nil {
		return m.ListEntriesFn(ctx, accountID, limit)
	}
	return nil, nil
}

func (m *Repo) SumEntries(ctx context.Context, accountID string) (account.EntryTotals, error) {
	if m.SumEntriesFn != nil {
		return m.SumEntriesFn(ctx, accountID)
	}
	return account.EntryTotals{Net: decimal.Zero, Debits: decimal.Zero}, nil
}
