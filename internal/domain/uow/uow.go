package uow

import (
	"context"

	"fleet-fuel-backend/internal/domain/account"
	"fleet-fuel-backend/internal/domain/fleet"
	"fleet-fuel-backend/internal/domain/fuel"
	"fleet-fuel-backend/internal/domain/ticket"
)

// Repos are bound to one transaction.
type Repos struct {
	Tickets     ticket.Repository
	Accounts    account.Repository
	FuelRecords fuel.Repository
	Fleet       fleet.Directory
}

type UnitOfWork interface {
	// commit when fn returns nil, roll back otherwise
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
