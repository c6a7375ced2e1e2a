package gormstore

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(gdb)

	a := makeAccount(500)
	tk := makeTicket("veh", "drv")
	rec := makeRecord("veh", "2", "10")

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Accounts.Create(ctx, a); err != nil {
			return err
		}
		if err := r.Tickets.Create(ctx, tk); err != nil {
			return err
		}
		return r.FuelRecords.Create(ctx, rec)
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	repos := NewRepos(gdb)
	if _, err := repos.Accounts.GetByAccountID(ctx, a.AccountID); err != nil {
		t.Fatalf("account not visible after commit: %v", err)
	}
	if _, err := repos.Tickets.GetByTicketID(ctx, tk.TicketID); err != nil {
		t.Fatalf("ticket not visible after commit: %v", err)
	}
	if _, err := repos.FuelRecords.GetByRecordID(ctx, rec.RecordID); err != nil {
		t.Fatalf("record not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()
	guow := NewGormUoW(gdb)

	a := makeAccount(500)
	if err := NewAccountRepository(gdb).Create(ctx, a); err != nil {
		t.Fatalf("seed: %v", err)
	}
	rec := makeRecord("veh", "2", "10")
	sentinel := errors.New("boom")

	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.FuelRecords.Create(ctx, rec); err != nil {
			return err
		}
		if _, err := r.Accounts.SwapBalance(ctx, a.AccountID, 1, decimal.NewFromInt(480)); err != nil {
			return err
		}
		return sentinel // force rollback
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel, got %v", err)
	}

	repos := NewRepos(gdb)
	if _, err := repos.FuelRecords.GetByRecordID(ctx, rec.RecordID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record absent after rollback, got %v", err)
	}
	got, _ := repos.Accounts.GetByAccountID(ctx, a.AccountID)
	if !got.CurrentBalance.Equal(decimal.NewFromInt(500)) || got.Version != 1 {
		t.Fatalf("balance changed despite rollback: %s v%d", got.CurrentBalance, got.Version)
	}
}
