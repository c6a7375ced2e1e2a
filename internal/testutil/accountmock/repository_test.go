package accountmock

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"fleet-fuel-backend/internal/domain/account"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if _, err := m.GetByAccountID(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByAccountID default: want context.Canceled, got %v", err)
	}
	if ok, err := m.SwapBalance(ctx, "a", 1, decimal.Zero); !ok || err != nil {
		t.Fatalf("SwapBalance default: ok=%v err=%v", ok, err)
	}
	tot, err := m.SumEntries(ctx, "a")
	if err != nil || !tot.Net.IsZero() || !tot.Debits.IsZero() {
		t.Fatalf("SumEntries default: %+v err=%v", tot, err)
	}
}

func TestRepo_SwapBalanceForwards(t *testing.T) {
	ctx := context.Background()
	var gotVersion uint64
	m := &Repo{
		SwapBalanceFn: func(_ context.Context, _ string, v uint64, _ decimal.Decimal) (bool, error) {
			gotVersion = v
			return false, nil
		},
		AppendEntryFn: func(_ context.Context, e *account.LedgerEntry) error {
			return errors.New("append failed: " + string(e.Kind))
		},
	}
	if ok, _ := m.SwapBalance(ctx, "a", 7, decimal.NewFromInt(1)); ok || gotVersion != 7 {
		t.Fatalf("SwapBalance: ok=%v version=%d", ok, gotVersion)
	}
	if err := m.AppendEntry(ctx, &account.LedgerEntry{Kind: account.EntryDebit}); err == nil || err.Error() != "append failed: debit" {
		t.Fatalf("AppendEntry: %v", err)
	}
}
