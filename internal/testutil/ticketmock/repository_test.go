package ticketmock

import (
	"context"
	"errors"
	"testing"

	"fleet-fuel-backend/internal/domain/ticket"
)

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}

	if err := m.Create(ctx, &ticket.Ticket{}); err != nil {
		t.Fatalf("Create default: want nil, got %v", err)
	}
	if _, err := m.GetByTicketID(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("GetByTicketID default: want context.Canceled, got %v", err)
	}
	if ok, err := m.UpdateStatus(ctx, "x", ticket.StatusPending, ticket.StatusChange{}); ok || !errors.Is(err, context.Canceled) {
		t.Fatalf("UpdateStatus default: ok=%v err=%v", ok, err)
	}
	if out, err := m.List(ctx, "", 0); out != nil || err != nil {
		t.Fatalf("List default: out=%v err=%v", out, err)
	}
}

func TestRepo_UpdateStatusForwards(t *testing.T) {
	ctx := context.Background()
	var gotFrom ticket.Status
	m := &Repo{
		UpdateStatusFn: func(_ context.Context, id string, from ticket.Status, ch ticket.StatusChange) (bool, error) {
			gotFrom = from
			return id == "t1" && ch.To == ticket.StatusApproved, nil
		},
	}
	ok, err := m.UpdateStatus(ctx, "t1", ticket.StatusPending, ticket.StatusChange{To: ticket.StatusApproved})
	if err != nil || !ok || gotFrom != ticket.StatusPending {
		t.Fatalf("UpdateStatus: ok=%v err=%v from=%s", ok, err, gotFrom)
	}
}
