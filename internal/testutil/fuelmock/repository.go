package fuelmock

import (
	"context"

	"github.com/shopspring/decimal"

	"fleet-fuel-backend/internal/domain/fuel"
)

var _ fuel.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies fuel.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, r *fuel.Record) error
	GetByRecordIDFn    func(ctx context.Context, recordID string) (*fuel.Record, error)
	LatestOdometerFn   func(ctx context.Context, vehicleID string) (*decimal.Decimal, error)
	SumCostByAccountFn func(ctx context.Context, accountID string) (decimal.Decimal, error)
}

func (m *Repo) Create(ctx context.Context, r *fuel.Record) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByRecordID(ctx context.Context, recordID string) (*fuel.Record, error) {
	if m.GetByRecordIDFn != nil {
		return m.GetByRecordIDFn(ctx, recordID)
	}
	return nil, context.Canceled
}

func (m *Repo) LatestOdometer(ctx context.Context, vehicleID string) (*decimal.Decimal, error) {
	if m.LatestOdometerFn != nil {
		return m.LatestOdometerFn(ctx, vehicleID)
	}
	return nil, nil
}

func (m *Repo) SumCostByAccount(ctx context.Context, accountID string) (decimal.Decimal, error) {
	if m.SumCostByAccountFn != nil {
		return m.SumCostByAccountFn(ctx, accountID)
	}
	return decimal.Zero, nil
}
