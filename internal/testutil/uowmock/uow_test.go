package uowmock

import (
	"context"
	"errors"
	"testing"

	"fleet-fuel-backend/internal/domain/uow"
	"fleet-fuel-backend/internal/testutil/accountmock"
	"fleet-fuel-backend/internal/testutil/ticketmock"
)

func TestUoW_WithRepos(t *testing.T) {
	ctx := context.Background()

	tickets := &ticketmock.Repo{}
	accounts := &accountmock.Repo{}
	m := New().WithRepos(uow.Repos{Tickets: tickets, Accounts: accounts})

	called := false
	err := m.WithinTx(ctx, func(r uow.Repos) error {
		called = true
		if r.Tickets != tickets || r.Accounts != accounts {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil || !called {
		t.Fatalf("WithinTx: err=%v called=%v", err, called)
	}
	if m.Calls != 1 {
		t.Fatalf("Calls = %d, want 1", m.Calls)
	}
}

func TestUoW_PropagatesError(t *testing.T) {
	sentinel := errors.New("boom")
	m := New().WithWithinTx(func(context.Context, func(uow.Repos) error) error { return sentinel })

	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Unimplemented(t *testing.T) {
	m := New()
	if err := m.WithinTx(context.Background(), func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("want errUnimplemented, got %v", err)
	}
	m.Reset()
	if m.Calls != 0 || m.WithinTxFn != nil {
		t.Fatalf("Reset did not clear state")
	}
}
