package gormstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/account"
	"fleet-fuel-backend/pkg/id"
)

func TestAccountRepository_CreateAndGet(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(gdb)

	a := makeAccount(10000)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	got, err := repo.GetByAccountID(ctx, a.AccountID)
	if err != nil {
		t.Fatalf("GetByAccountID err: %v", err)
	}
	if !got.CurrentBalance.Equal(decimal.NewFromInt(10000)) || got.Version != 1 {
		t.Fatalf("unexpected account: %+v", got)
	}
	if !got.Accepts("diesel") || got.Accepts("petrol") {
		t.Fatalf("fuel types not round-tripped: %s", got.FuelTypes)
	}

	if _, err := repo.GetByAccountID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestAccountRepository_SwapBalanceIsVersionGuarded(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(gdb)

	a := makeAccount(10000)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create err: %v", err)
	}

	ok, err := repo.SwapBalance(ctx, a.AccountID, 1, decimal.NewFromInt(3000))
	if err != nil || !ok {
		t.Fatalf("first swap: ok=%v err=%v", ok, err)
	}

	// a writer still holding version 1 loses
	ok, err = repo.SwapBalance(ctx, a.AccountID, 1, decimal.NewFromInt(6000))
	if err != nil || ok {
		t.Fatalf("stale swap must not match: ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetByAccountID(ctx, a.AccountID)
	if !got.CurrentBalance.Equal(decimal.NewFromInt(3000)) || got.Version != 2 {
		t.Fatalf("balance=%s version=%d, want 3000/2", got.CurrentBalance, got.Version)
	}

	ok, err = repo.SwapStatus(ctx, a.AccountID, 2, account.StatusSuspended)
	if err != nil || !ok {
		t.Fatalf("status swap: ok=%v err=%v", ok, err)
	}
	got, _ = repo.GetByAccountID(ctx, a.AccountID)
	if got.Status != account.StatusSuspended || got.Version != 3 {
		t.Fatalf("status=%s version=%d, want suspended/3", got.Status, got.Version)
	}
}

func TestAccountRepository_Entries(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository(gdb)

	accID := id.NewID32()
	entries := []account.LedgerEntry{
		{Kind: account.EntryDebit, Amount: decimal.RequireFromString("-0.1"), FuelRecordID: ptr(id.NewID32())},
		{Kind: account.EntryDebit, Amount: decimal.RequireFromString("-0.2"), FuelRecordID: ptr(id.NewID32())},
		{Kind: account.EntryAdjustment, Amount: decimal.RequireFromString("50.25"), Reason: "top-up"},
	}
	for i := range entries {
		e := entries[i]
		e.EntryID = id.NewID32()
		e.AccountID = accID
		if err := repo.AppendEntry(ctx, &e); err != nil {
			t.Fatalf("AppendEntry err: %v", err)
		}
	}
	// other account must not leak into sums
	if err := repo.AppendEntry(ctx, &account.LedgerEntry{
		EntryID: id.NewID32(), AccountID: id.NewID32(), Kind: account.EntryDebit, Amount: decimal.NewFromInt(-99),
	}); err != nil {
		t.Fatalf("AppendEntry err: %v", err)
	}

	totals, err := repo.SumEntries(ctx, accID)
	if err != nil {
		t.Fatalf("SumEntries err: %v", err)
	}
	if !totals.Net.Equal(decimal.RequireFromString("49.95")) {
		t.Fatalf("net = %s, want 49.95", totals.Net)
	}
	if !totals.Debits.Equal(decimal.RequireFromString("0.3")) {
		t.Fatalf("debits = %s, want 0.3", totals.Debits)
	}

	list, err := repo.ListEntries(ctx, accID, 2)
	if err != nil {
		t.Fatalf("ListEntries err: %v", err)
	}
	if len(list) != 2 || list[0].Kind != account.EntryAdjustment {
		t.Fatalf("expected newest-first, got %+v", list)
	}
}
