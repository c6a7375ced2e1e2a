package ticket

import "context"

type Repository interface {
	Create(ctx context.Context, t *Ticket) error

	// Get by public ticket_id; gorm.ErrRecordNotFound when absent
	GetByTicketID(ctx context.Context, ticketID string) (*Ticket, error)

	// Newest first; empty status means any
	List(ctx context.Context, status Status, limit int) ([]Ticket, error)

	// UpdateStatus applies ch only while the row still has status `from`.
	// Reports false when no row matched.
	UpdateStatus(ctx context.Context, ticketID string, from Status, ch StatusChange) (bool, error)
}
