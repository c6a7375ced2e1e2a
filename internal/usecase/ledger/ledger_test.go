package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleet-fuel-backend/internal/adapter/repository/gormstore"
	"fleet-fuel-backend/internal/domain/account"
	"fleet-fuel-backend/internal/domain/errs"
	"fleet-fuel-backend/internal/domain/uow"
	"fleet-fuel-backend/internal/testutil/testdb"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newLedger(t *testing.T) *Usecase {
	gdb := testdb.Open(t)
	return NewUsecase(gormstore.NewAccountRepository(gdb), gormstore.NewGormUoW(gdb), WithLogger(quietLogger()))
}

func openAccount(t *testing.T, u *Usecase, initial, credit string) *AccountDTO {
	t.Helper()
	a, err := u.CreateAccount(context.Background(), CreateAccountInput{
		AccountName:    "Depot West",
		SupplierName:   "PetroCo",
		InitialBalance: dec(initial),
		CreditLimit:    dec(credit),
		FuelTypes:      []string{"Diesel", "petrol"},
	})
	require.NoError(t, err)
	return a
}

func TestLedger_CreateAccount(t *testing.T) {
	u := newLedger(t)
	a := openAccount(t, u, "10000", "0")

	assert.Len(t, a.AccountID, 32)
	assert.True(t, a.CurrentBalance.Equal(dec("10000")))
	assert.True(t, a.InitialBalance.Equal(a.CurrentBalance))
	assert.Equal(t, "active", a.Status)
	assert.Equal(t, uint64(1), a.Version)
	assert.Equal(t, []string{"diesel", "petrol"}, a.FuelTypes)

	got, err := u.Get(context.Background(), a.AccountID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(dec("10000")))

	_, err = u.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLedger_SecondDebitExceedingBalanceFails(t *testing.T) {
	u := newLedger(t)
	ctx := context.Background()
	a := openAccount(t, u, "10000", "0")

	after, err := u.Debit(ctx, a.AccountID, dec("7000"), DebitMeta{})
	require.NoError(t, err)
	assert.True(t, after.CurrentBalance.Equal(dec("3000")))

	_, err = u.Debit(ctx, a.AccountID, dec("4000"), DebitMeta{})
	var ice *errs.InsufficientCreditError
	require.ErrorAs(t, err, &ice)
	assert.True(t, ice.Balance.Equal(dec("3000")))

	got, err := u.Get(ctx, a.AccountID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(dec("3000")), "failed debit must not move the balance")
}

func TestLedger_SequentialDebitsSum(t *testing.T) {
	u := newLedger(t)
	ctx := context.Background()
	a := openAccount(t, u, "1000", "0")

	amounts := []string{"100", "250.50", "0.75", "12.34"}
	sum := decimal.Zero
	for _, s := range amounts {
		_, err := u.Debit(ctx, a.AccountID, dec(s), DebitMeta{ActorID: "ops"})
		require.NoError(t, err)
		sum = sum.Add(dec(s))
	}

	got, err := u.Get(ctx, a.AccountID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(dec("1000").Sub(sum)), "balance %s", got.CurrentBalance)
	assert.Equal(t, uint64(1+len(amounts)), got.Version)

	entries, err := u.Entries(ctx, a.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, entries, len(amounts))
	assert.True(t, entries[0].BalanceAfter.Equal(got.CurrentBalance), "newest entry carries the current balance")
	assert.Equal(t, "debit", entries[0].Kind)
}

func TestLedger_ConcurrentDebitsAcceptFittingSubset(t *testing.T) {
	u := newLedger(t)
	a := openAccount(t, u, "1000", "0")

	const n = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		refused  int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := u.Debit(context.Background(), a.AccountID, dec("100"), DebitMeta{})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			case errors.Is(err, errs.ErrInsufficientCredit):
				refused++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Equal(t, n-10, refused)

	got, err := u.Get(context.Background(), a.AccountID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.IsZero(), "balance %s", got.CurrentBalance)

	entries, err := u.Entries(context.Background(), a.AccountID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}

func TestLedger_CreditLimit(t *testing.T) {
	u := newLedger(t)
	ctx := context.Background()
	a := openAccount(t, u, "100", "50")

	after, err := u.Debit(ctx, a.AccountID, dec("150"), DebitMeta{})
	require.NoError(t, err)
	assert.True(t, after.CurrentBalance.Equal(dec("-50")))

	_, err = u.Debit(ctx, a.AccountID, dec("0.01"), DebitMeta{})
	assert.ErrorIs(t, err, errs.ErrInsufficientCredit)
}

func TestLedger_AdjustAndStatus(t *testing.T) {
	u := newLedger(t)
	ctx := context.Background()
	a := openAccount(t, u, "500", "0")

	got, err := u.Adjust(ctx, a.AccountID, dec("250"), "top-up invoice 77", "admin")
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(dec("750")))

	_, err = u.Adjust(ctx, a.AccountID, dec("-751"), "correction", "admin")
	assert.ErrorIs(t, err, errs.ErrInsufficientCredit)

	_, err = u.SetStatus(ctx, a.AccountID, "suspended", "admin")
	require.NoError(t, err)

	_, err = u.Debit(ctx, a.AccountID, dec("1"), DebitMeta{})
	assert.ErrorIs(t, err, errs.ErrAccountInactive)

	// corrections still allowed while suspended
	got, err = u.Adjust(ctx, a.AccountID, dec("-50"), "refund supplier", "admin")
	require.NoError(t, err)
	assert.True(t, got.CurrentBalance.Equal(dec("700")))

	_, err = u.SetStatus(ctx, a.AccountID, "closed", "admin")
	require.NoError(t, err)

	_, err = u.Adjust(ctx, a.AccountID, dec("1"), "late", "admin")
	assert.ErrorIs(t, err, errs.ErrAccountInactive)

	_, err = u.SetStatus(ctx, a.AccountID, "active", "admin")
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = u.SetStatus(ctx, a.AccountID, "frozen", "admin")
	assert.ErrorIs(t, err, errs.ErrValidation)

	entries, err := u.Entries(ctx, a.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "adjustment", entries[0].Kind)
	assert.Equal(t, "refund supplier", entries[0].Reason)
}

func TestLedger_ReconcileReportsDrift(t *testing.T) {
	gdb := testdb.Open(t)
	u := NewUsecase(gormstore.NewAccountRepository(gdb), gormstore.NewGormUoW(gdb), WithLogger(quietLogger()))
	ctx := context.Background()
	a := openAccount(t, u, "1000", "0")

	_, err := u.Adjust(ctx, a.AccountID, dec("25.50"), "rebate", "admin")
	require.NoError(t, err)

	rec, err := u.Reconcile(ctx, a.AccountID)
	require.NoError(t, err)
	assert.True(t, rec.Consistent)
	assert.True(t, rec.ExpectedBalance.Equal(dec("1025.50")))

	// a debit with no fuel record behind it breaks the second identity
	_, err = u.Debit(ctx, a.AccountID, dec("40"), DebitMeta{})
	require.NoError(t, err)

	rec, err = u.Reconcile(ctx, a.AccountID)
	require.NoError(t, err)
	assert.False(t, rec.Consistent)
	assert.True(t, rec.BalanceDrift.IsZero())
	assert.True(t, rec.DebitDrift.Equal(dec("40")))

	// a balance written behind the ledger's back breaks the first
	require.NoError(t, gdb.Model(&account.Account{}).Where("account_id = ?", a.AccountID).
		Update("current_balance", dec("1")).Error)
	rec, err = u.Reconcile(ctx, a.AccountID)
	require.NoError(t, err)
	assert.True(t, rec.BalanceDrift.Equal(dec("1").Sub(dec("985.50"))))

	_, err = u.Reconcile(ctx, "missing")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// racingUoW lets another writer bump the account version right before the first
// compare-and-swap of the run, inside the same transaction.
type racingUoW struct {
	inner uow.UnitOfWork
	raced bool
}

type racingAccounts struct {
	account.Repository
	owner *racingUoW
}

func (r *racingAccounts) SwapBalance(ctx context.Context, id string, v uint64, bal decimal.Decimal) (bool, error) {
	if !r.owner.raced {
		r.owner.raced = true
		if _, err := r.Repository.SwapBalance(ctx, id, v, dec("999")); err != nil {
			return false, err
		}
	}
	return r.Repository.SwapBalance(ctx, id, v, bal)
}

func (u *racingUoW) WithinTx(ctx context.Context, fn func(uow.Repos) error) error {
	return u.inner.WithinTx(ctx, func(r uow.Repos) error {
		r.Accounts = &racingAccounts{Repository: r.Accounts, owner: u}
		return fn(r)
	})
}

func TestLedger_StaleVersionIsRetriedOnFreshRead(t *testing.T) {
	gdb := testdb.Open(t)
	ctx := context.Background()
	racer := &racingUoW{inner: gormstore.NewGormUoW(gdb)}
	u := NewUsecase(gormstore.NewAccountRepository(gdb), racer, WithLogger(quietLogger()))
	acc, err := NewUsecase(gormstore.NewAccountRepository(gdb), gormstore.NewGormUoW(gdb), WithLogger(quietLogger())).
		CreateAccount(ctx, CreateAccountInput{AccountName: "Race", InitialBalance: dec("1000")})
	require.NoError(t, err)

	got, err := u.Debit(ctx, acc.AccountID, dec("100"), DebitMeta{})
	require.NoError(t, err)
	assert.True(t, racer.raced)
	// the first attempt rolled back together with the racing write
	assert.True(t, got.CurrentBalance.Equal(dec("900")), "balance %s", got.CurrentBalance)
	assert.Equal(t, uint64(2), got.Version)

	entries, err := u.Entries(ctx, acc.AccountID, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// laggingUoW hands the first account load of a run a snapshot taken earlier, as if
// that read had happened just before another writer committed.
type laggingUoW struct {
	inner    uow.UnitOfWork
	snapshot *account.Account
	served   bool
	attempts int
}

func (l *laggingUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	l.attempts++
	return l.inner.WithinTx(ctx, func(r uow.Repos) error {
		r.Accounts = laggingAccounts{Repository: r.Accounts, owner: l}
		return fn(r)
	})
}

type laggingAccounts struct {
	account.Repository
	owner *laggingUoW
}

func (a laggingAccounts) GetByAccountID(ctx context.Context, accountID string) (*account.Account, error) {
	if !a.owner.served && a.owner.snapshot.AccountID == accountID {
		a.owner.served = true
		cp := *a.owner.snapshot
		return &cp, nil
	}
	return a.Repository.GetByAccountID(ctx, accountID)
}

func TestLedger_DebitOnStaleReadRetriesAgainstCommittedBalance(t *testing.T) {
	ctx := context.Background()
	gdb := testdb.Open(t)
	repo := gormstore.NewAccountRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)

	other := NewUsecase(repo, tx, WithLogger(quietLogger()))
	a := openAccount(t, other, "10000", "0")

	snap, err := repo.GetByAccountID(ctx, a.AccountID)
	require.NoError(t, err)
	_, err = other.Debit(ctx, a.AccountID, dec("3000"), DebitMeta{ActorID: "other"})
	require.NoError(t, err)

	lag := &laggingUoW{inner: tx, snapshot: snap}
	u := NewUsecase(repo, lag, WithLogger(quietLogger()))
	got, err := u.Debit(ctx, a.AccountID, dec("2000"), DebitMeta{ActorID: "late"})
	require.NoError(t, err)

	assert.Equal(t, 2, lag.attempts, "the version guard must reject the stale read exactly once")
	assert.True(t, got.CurrentBalance.Equal(dec("5000")), "balance %s", got.CurrentBalance)
	assert.Equal(t, uint64(3), got.Version)

	entries, err := u.Entries(ctx, a.AccountID, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].BalanceAfter.Equal(dec("5000")))
	assert.True(t, entries[1].BalanceAfter.Equal(dec("7000")))
}

func TestLedger_StatusChangeOnStaleReadRetries(t *testing.T) {
	ctx := context.Background()
	gdb := testdb.Open(t)
	repo := gormstore.NewAccountRepository(gdb)
	tx := gormstore.NewGormUoW(gdb)

	other := NewUsecase(repo, tx, WithLogger(quietLogger()))
	a := openAccount(t, other, "500", "0")

	snap, err := repo.GetByAccountID(ctx, a.AccountID)
	require.NoError(t, err)
	_, err = other.Debit(ctx, a.AccountID, dec("100"), DebitMeta{})
	require.NoError(t, err)

	lag := &laggingUoW{inner: tx, snapshot: snap}
	u := NewUsecase(repo, lag, WithLogger(quietLogger()))
	got, err := u.SetStatus(ctx, a.AccountID, "suspended", "fin-1")
	require.NoError(t, err)

	assert.Equal(t, 2, lag.attempts)
	assert.Equal(t, "suspended", got.Status)
	assert.True(t, got.CurrentBalance.Equal(dec("400")), "balance %s", got.CurrentBalance)
}
