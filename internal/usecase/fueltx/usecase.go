package fueltx

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/account"
	"fleet-fuel-backend/internal/domain/errs"
	"fleet-fuel-backend/internal/domain/fleet"
	"fleet-fuel-backend/internal/domain/fuel"
	"fleet-fuel-backend/internal/domain/ticket"
	"fleet-fuel-backend/internal/domain/uow"
	"fleet-fuel-backend/internal/usecase/ledger"
	"fleet-fuel-backend/pkg/id"
)

// Debiter is the ledger side of a fuel transaction.
type Debiter interface {
	DebitIn(ctx context.Context, r uow.Repos, accountID string, amount decimal.Decimal, meta ledger.DebitMeta) (*account.Account, error)
}

// Completer is the ticket side of a fuel transaction.
type Completer interface {
	CompleteIn(ctx context.Context, r uow.Repos, ticketID string) (*ticket.Ticket, error)
}

type Usecase struct {
	records fuel.Repository
	fleet   fleet.Directory
	uow     uow.UnitOfWork
	ledger  Debiter
	tickets Completer
	retry   uow.RetryPolicy
	log     logrus.FieldLogger
	now     func() time.Time
}

type Option func(*Usecase)

func WithLogger(l logrus.FieldLogger) Option   { return func(u *Usecase) { u.log = l } }
func WithRetryPolicy(p uow.RetryPolicy) Option { return func(u *Usecase) { u.retry = p } }
func WithClock(now func() time.Time) Option    { return func(u *Usecase) { u.now = now } }

func NewUsecase(records fuel.Repository, dir fleet.Directory, tx uow.UnitOfWork, l Debiter, c Completer, opts ...Option) *Usecase {
	u := &Usecase{
		records: records,
		fleet:   dir,
		uow:     tx,
		ledger:  l,
		tickets: c,
		retry:   uow.RetryPolicy{MaxAttempts: uow.DefaultMaxAttempts},
		log:     logrus.StandardLogger(),
		now:     time.Now,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// RecordFuel writes the fuel record, debits the bulk account and completes the work
// ticket in one transaction. Any failure leaves none of the three behind.
func (u *Usecase) RecordFuel(ctx context.Context, in RecordFuelInput) (*FuelRecordDTO, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}

	if _, err := u.fleet.GetVehicle(ctx, in.VehicleID); err != nil {
		return nil, lookupErr("vehicle", in.VehicleID, err)
	}
	if _, err := u.fleet.GetDriver(ctx, in.DriverID); err != nil {
		return nil, lookupErr("driver", in.DriverID, err)
	}

	fueledAt := in.FueledAt
	if fueledAt.IsZero() {
		fueledAt = u.now()
	}
	rec := &fuel.Record{
		RecordID:        id.NewID32(),
		VehicleID:       in.VehicleID,
		DriverID:        in.DriverID,
		FuelType:        in.FuelType,
		Quantity:        in.Quantity,
		CostPerLiter:    in.CostPerLiter,
		TotalCost:       fuel.ComputeTotalCost(in.Quantity, in.CostPerLiter),
		OdometerReading: in.OdometerReading,
		Station:         in.Station,
		ReceiptNumber:   in.ReceiptNumber,
		FueledAt:        fueledAt.UTC(),
		RecordedBy:      in.RecordedBy,
	}
	if in.BulkAccountID != "" {
		rec.BulkAccountID = &in.BulkAccountID
	}
	if in.WorkTicketID != "" {
		rec.WorkTicketID = &in.WorkTicketID
	}

	var (
		out      *FuelRecordDTO
		warnings []string
	)
	policy := u.retry
	policy.OnRetry = func(attempt int, err error) {
		u.log.WithFields(logrus.Fields{"record_id": rec.RecordID, "attempt": attempt}).
			WithError(err).Debug("stale write in fuel transaction, retrying")
	}
	err := uow.WithinTxRetry(ctx, u.uow, policy, func(r uow.Repos) error {
		// each attempt starts from scratch
		rec.ID = 0
		warnings = nil
		out = nil

		if rec.OdometerReading != nil {
			last, err := r.FuelRecords.LatestOdometer(ctx, rec.VehicleID)
			if err != nil {
				return fmt.Errorf("latest odometer %s: %w", rec.VehicleID, err)
			}
			if last != nil && rec.OdometerReading.LessThan(*last) {
				warnings = append(warnings, fmt.Sprintf("odometer %s is below the last reading %s", rec.OdometerReading, last))
			}
		}

		var t *ticket.Ticket
		if rec.WorkTicketID != nil {
			var err error
			t, err = r.Tickets.GetByTicketID(ctx, *rec.WorkTicketID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &errs.NotFoundError{Entity: "ticket", ID: *rec.WorkTicketID}
			}
			if err != nil {
				return fmt.Errorf("load ticket %s: %w", *rec.WorkTicketID, err)
			}
			if t.VehicleID != rec.VehicleID {
				return errs.Invalid("work_ticket_id", "ticket was issued for a different vehicle")
			}
			if rec.Quantity.GreaterThan(t.FuelRequired) {
				warnings = append(warnings, fmt.Sprintf("quantity %s exceeds the %s liters authorised by the ticket", rec.Quantity, t.FuelRequired))
			}
		}

		if err := r.FuelRecords.Create(ctx, rec); err != nil {
			return fmt.Errorf("create fuel record: %w", err)
		}
		out = toDTO(rec)

		if rec.BulkAccountID != nil {
			a, err := u.ledger.DebitIn(ctx, r, *rec.BulkAccountID, rec.TotalCost, ledger.DebitMeta{
				FuelRecordID: rec.RecordID,
				FuelType:     rec.FuelType,
				ActorID:      rec.RecordedBy,
			})
			if err != nil {
				return err
			}
			bal := a.CurrentBalance
			out.AccountBalance = &bal
		}

		if t != nil {
			done, err := u.tickets.CompleteIn(ctx, r, t.TicketID)
			if err != nil {
				return err
			}
			out.TicketStatus = string(done.Status)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	entry := u.log.WithFields(logrus.Fields{
		"record_id":  rec.RecordID,
		"vehicle_id": rec.VehicleID,
		"total_cost": rec.TotalCost.StringFixed(2),
	})
	if rec.BulkAccountID != nil {
		entry = entry.WithField("account_id", *rec.BulkAccountID)
	}
	if rec.WorkTicketID != nil {
		entry = entry.WithField("ticket_id", *rec.WorkTicketID)
	}
	for _, w := range warnings {
		entry.Warn(w)
	}
	entry.Info("fuel recorded")

	out.Warnings = warnings
	return out, nil
}

func validate(in *RecordFuelInput) error {
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	in.DriverID = strings.TrimSpace(in.DriverID)
	in.FuelType = account.NormalizeFuelType(in.FuelType)
	in.BulkAccountID = strings.TrimSpace(in.BulkAccountID)
	in.WorkTicketID = strings.TrimSpace(in.WorkTicketID)

	v := &errs.ValidationError{}
	if in.VehicleID == "" {
		v.Add("vehicle_id", "is required")
	}
	if in.DriverID == "" {
		v.Add("driver_id", "is required")
	}
	if in.FuelType == "" {
		v.Add("fuel_type", "is required")
	}
	switch {
	case !in.Quantity.IsPositive():
		v.Add("quantity", "must be greater than 0")
	case !fitsPlaces(in.Quantity, fuel.QuantityPlaces):
		v.Add("quantity", fmt.Sprintf("must have at most %d decimal places", fuel.QuantityPlaces))
	}
	switch {
	case in.CostPerLiter.IsNegative():
		v.Add("cost_per_liter", "must not be negative")
	case !fitsPlaces(in.CostPerLiter, fuel.CostPerLiterPlaces):
		v.Add("cost_per_liter", fmt.Sprintf("must have at most %d decimal places", fuel.CostPerLiterPlaces))
	case in.BulkAccountID != "" && in.CostPerLiter.IsZero():
		v.Add("cost_per_liter", "must be greater than 0 when a bulk account is charged")
	}
	if o := in.OdometerReading; o != nil {
		switch {
		case o.IsNegative():
			v.Add("odometer_reading", "must not be negative")
		case !fitsPlaces(*o, fuel.OdometerPlaces):
			v.Add("odometer_reading", fmt.Sprintf("must have at most %d decimal place", fuel.OdometerPlaces))
		}
	}
	return v.OrNil()
}

// fitsPlaces reports whether d survives storage in a column with the given scale.
func fitsPlaces(d decimal.Decimal, places int32) bool { return d.Equal(d.Round(places)) }

func (u *Usecase) Get(ctx context.Context, recordID string) (*FuelRecordDTO, error) {
	r, err := u.records.GetByRecordID(ctx, recordID)
	if err != nil {
		return nil, lookupErr("fuel record", recordID, err)
	}
	return toDTO(r), nil
}

func lookupErr(entity, key string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &errs.NotFoundError{Entity: entity, ID: key}
	}
	return fmt.Errorf("lookup %s %s: %w", entity, key, err)
}
