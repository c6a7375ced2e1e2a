package approval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/errs"
	"fleet-fuel-backend/internal/domain/fleet"
	"fleet-fuel-backend/internal/domain/ticket"
	"fleet-fuel-backend/internal/domain/uow"
	"fleet-fuel-backend/pkg/id"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

type Usecase struct {
	tickets ticket.Repository
	fleet   fleet.Directory
	uow     uow.UnitOfWork
	retry   uow.RetryPolicy
	log     logrus.FieldLogger
	now     func() time.Time
}

type Option func(*Usecase)

func WithLogger(l logrus.FieldLogger) Option   { return func(u *Usecase) { u.log = l } }
func WithRetryPolicy(p uow.RetryPolicy) Option { return func(u *Usecase) { u.retry = p } }
func WithClock(now func() time.Time) Option    { return func(u *Usecase) { u.now = now } }

// NewUsecase: tickets and fleet serve reads; every write goes through tx.
func NewUsecase(tickets ticket.Repository, dir fleet.Directory, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		tickets: tickets,
		fleet:   dir,
		uow:     tx,
		retry:   uow.RetryPolicy{MaxAttempts: uow.DefaultMaxAttempts},
		log:     logrus.StandardLogger(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) Submit(ctx context.Context, in SubmitInput) (*TicketDTO, error) {
	if err := validateSubmit(&in); err != nil {
		return nil, err
	}

	driver, err := u.fleet.GetDriver(ctx, in.DriverID)
	if err != nil {
		return nil, lookupErr("driver", in.DriverID, err)
	}
	vehicle, err := u.fleet.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, lookupErr("vehicle", in.VehicleID, err)
	}

	t := &ticket.Ticket{
		TicketID:            id.NewID32(),
		DriverID:            driver.DriverID,
		DriverName:          driver.FullName,
		DriverLicense:       driver.LicenseNumber,
		VehicleID:           vehicle.VehicleID,
		VehicleRegistration: vehicle.Registration,
		Destination:         in.Destination,
		Purpose:             in.Purpose,
		FuelRequired:        in.FuelRequired,
		EstimatedDistance:   in.EstimatedDistance,
		DepartureDate:       in.DepartureDate,
		ReturnDate:          in.ReturnDate,
		Notes:               in.Notes,
		Status:              ticket.StatusPending,
		SubmittedBy:         in.SubmittedBy,
	}
	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Tickets.Create(ctx, t)
	}); err != nil {
		return nil, fmt.Errorf("create ticket: %w", err)
	}

	u.log.WithFields(logrus.Fields{
		"ticket_id":  t.TicketID,
		"vehicle_id": t.VehicleID,
		"driver_id":  t.DriverID,
	}).Info("ticket submitted")
	return toDTO(t), nil
}

func validateSubmit(in *SubmitInput) error {
	in.DriverID = strings.TrimSpace(in.DriverID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	in.Destination = strings.TrimSpace(in.Destination)
	in.Purpose = strings.TrimSpace(in.Purpose)

	v := &errs.ValidationError{}
	if in.DriverID == "" {
		v.Add("driver_id", "is required")
	}
	if in.VehicleID == "" {
		v.Add("vehicle_id", "is required")
	}
	if in.Destination == "" {
		v.Add("destination", "is required")
	}
	if in.Purpose == "" {
		v.Add("purpose", "is required")
	}
	if !in.FuelRequired.IsPositive() {
		v.Add("fuel_required", "must be greater than 0")
	}
	if in.EstimatedDistance.IsNegative() {
		v.Add("estimated_distance", "must not be negative")
	}
	if in.DepartureDate != nil && in.ReturnDate != nil && in.ReturnDate.Before(*in.DepartureDate) {
		v.Add("return_date", "must not be before departure_date")
	}
	return v.OrNil()
}

func (u *Usecase) Approve(ctx context.Context, ticketID, approverID string) (*TicketDTO, error) {
	approverID = strings.TrimSpace(approverID)
	if approverID == "" {
		return nil, errs.Invalid("approver_id", "is required")
	}
	return u.transition(ctx, ticketID, ticket.StatusChange{
		To:         ticket.StatusApproved,
		ApprovedBy: &approverID,
	})
}

func (u *Usecase) Reject(ctx context.Context, ticketID, approverID, reason string) (*TicketDTO, error) {
	approverID = strings.TrimSpace(approverID)
	reason = strings.TrimSpace(reason)

	v := &errs.ValidationError{}
	if approverID == "" {
		v.Add("approver_id", "is required")
	}
	if reason == "" {
		v.Add("reason", "is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}
	return u.transition(ctx, ticketID, ticket.StatusChange{
		To:              ticket.StatusRejected,
		RejectedBy:      &approverID,
		RejectionReason: &reason,
	})
}

// Complete moves an approved ticket to completed in its own transaction.
func (u *Usecase) Complete(ctx context.Context, ticketID string) (*TicketDTO, error) {
	return u.transition(ctx, ticketID, ticket.StatusChange{To: ticket.StatusCompleted})
}

// CompleteIn is Complete inside a caller's transaction. A stale write comes back
// as *errs.StaleWriteError for the caller's retry loop.
func (u *Usecase) CompleteIn(ctx context.Context, r uow.Repos, ticketID string) (*ticket.Ticket, error) {
	return u.transitionIn(ctx, r, ticketID, ticket.StatusChange{To: ticket.StatusCompleted, At: u.now().UTC()})
}

func (u *Usecase) transition(ctx context.Context, ticketID string, ch ticket.StatusChange) (*TicketDTO, error) {
	ch.At = u.now().UTC()
	var out *ticket.Ticket
	err := uow.WithinTxRetry(ctx, u.uow, u.retryPolicy(ticketID), func(r uow.Repos) error {
		t, err := u.transitionIn(ctx, r, ticketID, ch)
		out = t
		return err
	})
	if err != nil {
		return nil, err
	}

	fields := logrus.Fields{"ticket_id": ticketID, "status": ch.To}
	if ch.ApprovedBy != nil {
		fields["approved_by"] = *ch.ApprovedBy
	}
	if ch.RejectedBy != nil {
		fields["rejected_by"] = *ch.RejectedBy
	}
	u.log.WithFields(fields).Info("ticket transitioned")
	return toDTO(out), nil
}

// transitionIn reads, checks the state table, then writes with the old status as guard.
// When the guard misses, a re-read tells a lost race (InvalidTransition) apart from a
// stale snapshot (retry).
func (u *Usecase) transitionIn(ctx context.Context, r uow.Repos, ticketID string, ch ticket.StatusChange) (*ticket.Ticket, error) {
	t, err := loadTicket(ctx, r.Tickets, ticketID)
	if err != nil {
		return nil, err
	}
	from := t.Status
	if !from.CanTransitionTo(ch.To) {
		return nil, invalidTransition(ticketID, from, ch.To)
	}

	ok, err := r.Tickets.UpdateStatus(ctx, ticketID, from, ch)
	if err != nil {
		return nil, fmt.Errorf("update ticket %s: %w", ticketID, err)
	}
	if !ok {
		cur, err := loadTicket(ctx, r.Tickets, ticketID)
		if err != nil {
			return nil, err
		}
		if cur.Status != from {
			return nil, invalidTransition(ticketID, cur.Status, ch.To)
		}
		return nil, &errs.StaleWriteError{Entity: "ticket", ID: ticketID}
	}

	return loadTicket(ctx, r.Tickets, ticketID)
}

func (u *Usecase) Get(ctx context.Context, ticketID string) (*TicketDTO, error) {
	t, err := loadTicket(ctx, u.tickets, ticketID)
	if err != nil {
		return nil, err
	}
	return toDTO(t), nil
}

// List returns tickets newest first; status "" means any.
func (u *Usecase) List(ctx context.Context, status string, limit int) ([]TicketDTO, error) {
	st := ticket.Status(strings.ToLower(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return nil, errs.Invalid("status", "must be one of pending, approved, rejected, completed")
	}
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}

	rows, err := u.tickets.List(ctx, st, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	out := make([]TicketDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *toDTO(&rows[i]))
	}
	return out, nil
}

func (u *Usecase) retryPolicy(ticketID string) uow.RetryPolicy {
	p := u.retry
	p.OnRetry = func(attempt int, err error) {
		u.log.WithFields(logrus.Fields{"ticket_id": ticketID, "attempt": attempt}).
			WithError(err).Debug("stale ticket snapshot, retrying")
	}
	return p
}

func loadTicket(ctx context.Context, repo ticket.Repository, ticketID string) (*ticket.Ticket, error) {
	t, err := repo.GetByTicketID(ctx, ticketID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &errs.NotFoundError{Entity: "ticket", ID: ticketID}
	}
	if err != nil {
		return nil, fmt.Errorf("load ticket %s: %w", ticketID, err)
	}
	return t, nil
}

func invalidTransition(ticketID string, from, to ticket.Status) error {
	return &errs.InvalidTransitionError{Entity: "ticket", ID: ticketID, From: string(from), To: string(to)}
}

func lookupErr(entity, key string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &errs.NotFoundError{Entity: entity, ID: key}
	}
	return fmt.Errorf("lookup %s %s: %w", entity, key, err)
}
