package ticketmock

import (
	"context"

	"fleet-fuel-backend/internal/domain/ticket"
)

var _ ticket.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies ticket.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, t *ticket.Ticket) error
	GetByTicketIDFn func(ctx context.Context, ticketID string) (*ticket.Ticket, error)
	ListFn          func(ctx context.Context, status ticket.Status, limit int) ([]ticket.Ticket, error)
	UpdateStatusFn  func(ctx context.Context, ticketID string, from ticket.Status, ch ticket.StatusChange) (bool, error)
}

func (m *Repo) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *Repo) GetByTicketID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	if m.GetByTicketIDFn != nil {
		return m.GetByTicketIDFn(ctx, ticketID)
	}
	return nil, context.Canceled
}

func (m *Repo) List(ctx context.Context, status ticket.Status, limit int) ([]ticket.Ticket, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status, limit)
	}
	return nil, nil
}

func (m *Repo) UpdateStatus(ctx context.Context, ticketID string, from ticket.Status, ch ticket.StatusChange) (bool, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, ticketID, from, ch)
	}
	return false, context.Canceled
}
