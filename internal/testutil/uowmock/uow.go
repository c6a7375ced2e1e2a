package uowmock

import (
	"context"
	"errors"

	"fleet-fuel-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// An unset WithinTxFn returns errUnimplemented.
type UoW struct {
	WithinTxFn func(ctx context.Context, fn func(r uow.Repos) error) error

	// Calls counts WithinTx invocations (one per attempt under retry).
	Calls int
}

func New() *UoW { return &UoW{} }

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}

// WithRepos runs every transaction body against repos, with no rollback.
func (m *UoW) WithRepos(repos uow.Repos) *UoW {
	m.WithinTxFn = func(_ context.Context, fn func(uow.Repos) error) error { return fn(repos) }
	return m
}

func (m *UoW) Reset() { *m = UoW{} }

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	m.Calls++
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
