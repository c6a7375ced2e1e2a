package ledger

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
	"fleet-fuel-backend/internal/domain/uow"
	"fleet-fuel-backend/pkg/id"
)

const (
	DefaultEntriesLimit = 100
	MaxEntriesLimit     = 1000
)

// Usecase owns every write to current_balance. Balances move only through Debit
// and Adjust, each a version compare-and-swap plus one journal entry.
type Usecase struct {
	accounts account.Repository
	uow      uow.UnitOfWork
	retry    uow.RetryPolicy
	log      logrus.FieldLogger
	now      func() time.Time
}

type Option func(*Usecase)

func WithLogger(l logrus.FieldLogger) Option   { return func(u *Usecase) { u.log = l } }
func WithRetryPolicy(p uow.RetryPolicy) Option { return func(u *Usecase) { u.retry = p } }

func NewUsecase(accounts account.Repository, tx uow.UnitOfWork, opts ...Option) *Usecase {
	u := &Usecase{
		accounts: accounts,
		uow:      tx,
		retry:    uow.RetryPolicy{MaxAttempts: uow.DefaultMaxAttempts},
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

func (u *Usecase) CreateAccount(ctx context.Context, in CreateAccountInput) (*AccountDTO, error) {
	in.AccountName = strings.TrimSpace(in.AccountName)

	v := &errs.ValidationError{}
	if in.AccountName == "" {
		v.Add("account_name", "is required")
	}
	switch {
	case in.InitialBalance.IsNegative():
		v.Add("initial_balance", "must not be negative")
	case !wholeCents(in.InitialBalance):
		v.Add("initial_balance", "must have at most 2 decimal places")
	}
	switch {
	case in.CreditLimit.IsNegative():
		v.Add("credit_limit", "must not be negative")
	case !wholeCents(in.CreditLimit):
		v.Add("credit_limit", "must have at most 2 decimal places")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	a := &account.Account{
		AccountID:      id.NewID32(),
		AccountName:    in.AccountName,
		SupplierName:   strings.TrimSpace(in.SupplierName),
		AccountNumber:  strings.TrimSpace(in.AccountNumber),
		ContactPerson:  strings.TrimSpace(in.ContactPerson),
		ContactPhone:   strings.TrimSpace(in.ContactPhone),
		ContactEmail:   strings.TrimSpace(in.ContactEmail),
		InitialBalance: in.InitialBalance,
		CurrentBalance: in.InitialBalance,
		CreditLimit:    in.CreditLimit,
		Status:         account.StatusActive,
		Version:        1,
	}
	a.SetFuelTypes(in.FuelTypes)

	if err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		return r.Accounts.Create(ctx, a)
	}); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	u.log.WithFields(logrus.Fields{
		"account_id":      a.AccountID,
		"initial_balance": a.InitialBalance.StringFixed(2),
		"created_by":      in.CreatedBy,
	}).Info("bulk fuel account created")
	return toDTO(a), nil
}

// Debit takes amount off the balance in its own transaction, retrying stale versions.
func (u *Usecase) Debit(ctx context.Context, accountID string, amount decimal.Decimal, meta DebitMeta) (*AccountDTO, error) {
	var out *account.Account
	err := uow.WithinTxRetry(ctx, u.uow, u.retryPolicy(accountID), func(r uow.Repos) error {
		a, err := u.DebitIn(ctx, r, accountID, amount, meta)
		out = a
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"account_id":     accountID,
		"amount":         amount.StringFixed(2),
		"balance_after":  out.CurrentBalance.StringFixed(2),
		"fuel_record_id": meta.FuelRecordID,
	}).Info("account debited")
	return toDTO(out), nil
}

// DebitIn is Debit inside a caller's transaction. A lost compare-and-swap comes back
// as *errs.StaleWriteError; the caller must retry its whole transaction.
func (u *Usecase) DebitIn(ctx context.Context, r uow.Repos, accountID string, amount decimal.Decimal, meta DebitMeta) (*account.Account, error) {
	if !amount.IsPositive() {
		return nil, errs.Invalid("amount", "must be greater than 0")
	}
	if !wholeCents(amount) {
		return nil, errs.Invalid("amount", "must have at most 2 decimal places")
	}
	a, err := loadAccount(ctx, r.Accounts, accountID)
	if err != nil {
		return nil, err
	}
	if a.Status != account.StatusActive {
		return nil, &errs.AccountInactiveError{AccountID: accountID, Status: string(a.Status)}
	}
	if meta.FuelType != "" && !a.Accepts(meta.FuelType) {
		return nil, errs.Invalid("fuel_type", fmt.Sprintf("%q is not accepted by account %s", meta.FuelType, accountID))
	}

	next := a.CurrentBalance.Sub(amount)
	if next.LessThan(a.Floor()) {
		return nil, &errs.InsufficientCreditError{
			AccountID:   accountID,
			Balance:     a.CurrentBalance,
			Amount:      amount,
			CreditLimit: a.CreditLimit,
		}
	}

	e := &account.LedgerEntry{
		Kind:    account.EntryDebit,
		Amount:  amount.Neg(),
		ActorID: meta.ActorID,
	}
	if meta.FuelRecordID != "" {
		e.FuelRecordID = &meta.FuelRecordID
	}
	if err := u.move(ctx, r, a, next, e); err != nil {
		return nil, err
	}
	return a, nil
}

// Adjust applies a signed administrative correction. Closed accounts refuse it;
// a negative delta obeys the credit limit like a debit.
func (u *Usecase) Adjust(ctx context.Context, accountID string, delta decimal.Decimal, reason, actorID string) (*AccountDTO, error) {
	reason = strings.TrimSpace(reason)
	v := &errs.ValidationError{}
	switch {
	case delta.IsZero():
		v.Add("delta", "must not be zero")
	case !wholeCents(delta):
		v.Add("delta", "must have at most 2 decimal places")
	}
	if reason == "" {
		v.Add("reason", "is required")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	var out *account.Account
	err := uow.WithinTxRetry(ctx, u.uow, u.retryPolicy(accountID), func(r uow.Repos) error {
		a, err := loadAccount(ctx, r.Accounts, accountID)
		if err != nil {
			return err
		}
		if a.Status == account.StatusClosed {
			return &errs.AccountInactiveError{AccountID: accountID, Status: string(a.Status)}
		}
		next := a.CurrentBalance.Add(delta)
		if delta.IsNegative() && next.LessThan(a.Floor()) {
			return &errs.InsufficientCreditError{
				AccountID:   accountID,
				Balance:     a.CurrentBalance,
				Amount:      delta.Neg(),
				CreditLimit: a.CreditLimit,
			}
		}
		if err := u.move(ctx, r, a, next, &account.LedgerEntry{
			Kind:    account.EntryAdjustment,
			Amount:  delta,
			Reason:  reason,
			ActorID: actorID,
		}); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{
		"account_id":    accountID,
		"delta":         delta.StringFixed(2),
		"balance_after": out.CurrentBalance.StringFixed(2),
		"actor_id":      actorID,
	}).Warn("account balance adjusted")
	return toDTO(out), nil
}

// move swaps the balance from a's snapshot to next and journals e. On success a
// reflects the stored row.
func (u *Usecase) move(ctx context.Context, r uow.Repos, a *account.Account, next decimal.Decimal, e *account.LedgerEntry) error {
	ok, err := r.Accounts.SwapBalance(ctx, a.AccountID, a.Version, next)
	if err != nil {
		return fmt.Errorf("update balance %s: %w", a.AccountID, err)
	}
	if !ok {
		return &errs.StaleWriteError{Entity: "account", ID: a.AccountID}
	}

	e.EntryID = id.NewID32()
	e.AccountID = a.AccountID
	e.BalanceAfter = next
	if err := r.Accounts.AppendEntry(ctx, e); err != nil {
		return fmt.Errorf("append ledger entry %s: %w", a.AccountID, err)
	}

	a.CurrentBalance = next
	a.Version++
	a.UpdatedAt = u.now().UTC()
	return nil
}

// SetStatus: active <-> suspended, either -> closed. closed is final.
func (u *Usecase) SetStatus(ctx context.Context, accountID, status, actorID string) (*AccountDTO, error) {
	to := account.Status(strings.ToLower(strings.TrimSpace(status)))
	if !to.Valid() {
		return nil, errs.Invalid("status", "must be one of active, suspended, closed")
	}

	var out *account.Account
	err := uow.WithinTxRetry(ctx, u.uow, u.retryPolicy(accountID), func(r uow.Repos) error {
		a, err := loadAccount(ctx, r.Accounts, accountID)
		if err != nil {
			return err
		}
		if !a.Status.CanTransitionTo(to) {
			return &errs.InvalidTransitionError{Entity: "account", ID: accountID, From: string(a.Status), To: string(to)}
		}
		ok, err := r.Accounts.SwapStatus(ctx, accountID, a.Version, to)
		if err != nil {
			return fmt.Errorf("update status %s: %w", accountID, err)
		}
		if !ok {
			return &errs.StaleWriteError{Entity: "account", ID: accountID}
		}
		a.Status = to
		a.Version++
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.WithFields(logrus.Fields{"account_id": accountID, "status": to, "actor_id": actorID}).Info("account status changed")
	return toDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, accountID string) (*AccountDTO, error) {
	a, err := loadAccount(ctx, u.accounts, accountID)
	if err != nil {
		return nil, err
	}
	return toDTO(a), nil
}

// Entries lists the journal newest first.
func (u *Usecase) Entries(ctx context.Context, accountID string, limit int) ([]EntryDTO, error) {
	if _, err := loadAccount(ctx, u.accounts, accountID); err != nil {
		return nil, err
	}
	switch {
	case limit <= 0:
		limit = DefaultEntriesLimit
	case limit > MaxEntriesLimit:
		limit = MaxEntriesLimit
	}
	rows, err := u.accounts.ListEntries(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("list entries %s: %w", accountID, err)
	}
	out := make([]EntryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, toEntryDTO(&rows[i]))
	}
	return out, nil
}

// Reconcile reads the account, its journal and its fuel records in one transaction.
func (u *Usecase) Reconcile(ctx context.Context, accountID string) (*Reconciliation, error) {
	var rec *Reconciliation
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		a, err := loadAccount(ctx, r.Accounts, accountID)
		if err != nil {
			return err
		}
		totals, err := r.Accounts.SumEntries(ctx, accountID)
		if err != nil {
			return fmt.Errorf("sum entries %s: %w", accountID, err)
		}
		fuelCost, err := r.FuelRecords.SumCostByAccount(ctx, accountID)
		if err != nil {
			return fmt.Errorf("sum fuel cost %s: %w", accountID, err)
		}

		expected := a.InitialBalance.Add(totals.Net)
		rec = &Reconciliation{
			AccountID:       accountID,
			InitialBalance:  a.InitialBalance,
			CurrentBalance:  a.CurrentBalance,
			EntriesNet:      totals.Net,
			ExpectedBalance: expected,
			BalanceDrift:    a.CurrentBalance.Sub(expected),
			DebitTotal:      totals.Debits,
			FuelCostTotal:   fuelCost,
			DebitDrift:      totals.Debits.Sub(fuelCost),
		}
		rec.Consistent = rec.BalanceDrift.IsZero() && rec.DebitDrift.IsZero()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !rec.Consistent {
		u.log.WithFields(logrus.Fields{
			"account_id":    accountID,
			"balance_drift": rec.BalanceDrift.String(),
			"debit_drift":   rec.DebitDrift.String(),
		}).Error("ledger out of balance")
	}
	return rec, nil
}

func (u *Usecase) retryPolicy(accountID string) uow.RetryPolicy {
	p := u.retry
	p.OnRetry = func(attempt int, err error) {
		u.log.WithFields(logrus.Fields{"account_id": accountID, "attempt": attempt}).
			WithError(err).Debug("stale account version, retrying")
	}
	return p
}

func wholeCents(d decimal.Decimal) bool { return d.Equal(d.Round(2)) }

func loadAccount(ctx context.Context, repo account.Repository, accountID string) (*account.Account, error) {
	a, err := repo.GetByAccountID(ctx, accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &errs.NotFoundError{Entity: "account", ID: accountID}
	}
	if err != nil {
		return nil, fmt.Errorf("load account %s: %w", accountID, err)
	}
	return a, nil
}
