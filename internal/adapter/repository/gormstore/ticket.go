package gormstore

import (
	"context"

	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/ticket"
)

type TicketRepository struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) *TicketRepository { return &TicketRepository{db: db} }

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepository) GetByTicketID(ctx context.Context, ticketID string) (*ticket.Ticket, error) {
	var out ticket.Ticket
	res := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&out)
	return &out, res.Error
}

func (r *TicketRepository) List(ctx context.Context, status ticket.Status, limit int) ([]ticket.Ticket, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []ticket.Ticket
	return out, q.Find(&out).Error
}

// UpdateStatus is a compare-and-swap on status; the WHERE clause is the guard.
func (r *TicketRepository) UpdateStatus(ctx context.Context, ticketID string, from ticket.Status, ch ticket.StatusChange) (bool, error) {
	cols := map[string]any{"status": ch.To}
	switch ch.To {
	case ticket.StatusApproved:
		cols["approved_by"] = ch.ApprovedBy
		cols["approved_at"] = ch.At
	case ticket.StatusRejected:
		cols["rejected_by"] = ch.RejectedBy
		cols["rejected_at"] = ch.At
		cols["rejection_reason"] = ch.RejectionReason
	case ticket.StatusCompleted:
		cols["completed_at"] = ch.At
	}

	res := r.db.WithContext(ctx).
		Model(&ticket.Ticket{}).
		Where("ticket_id = ? AND status = ?", ticketID, from).
		Updates(cols)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
