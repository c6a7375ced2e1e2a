package gormstore

import (
	"context"

	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/uow"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

// Repos bound to db, for reads outside a transaction.
func NewRepos(db *gorm.DB) uow.Repos {
	return uow.Repos{
		Tickets:     &TicketRepository{db: db},
		Accounts:    &AccountRepository{db: db},
		FuelRecords: &FuelRecordRepository{db: db},
		Fleet:       &FleetDirectory{db: db},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepos(tx))
	})
}
