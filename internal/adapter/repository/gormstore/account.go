package gormstore

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fleet-fuel-backend/internal/domain/account"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AccountRepository) GetByAccountID(ctx context.Context, accountID string) (*account.Account, error) {
	var out account.Account
	res := r.db.WithContext(ctx).Where("account_id = ?", accountID).First(&out)
	return &out, res.Error
}

func (r *AccountRepository) SwapBalance(ctx context.Context, accountID string, version uint64, balance decimal.Decimal) (bool, error) {
	return r.swap(ctx, accountID, version, map[string]any{"current_balance": balance})
}

func (r *AccountRepository) SwapStatus(ctx context.Context, accountID string, version uint64, status account.Status) (bool, error) {
	return r.swap(ctx, accountID, version, map[string]any{"status": status})
}

// swap writes cols and bumps version, only if the row still carries `version`.
func (r *AccountRepository) swap(ctx context.Context, accountID string, version uint64, cols map[string]any) (bool, error) {
	cols["version"] = gorm.Expr("version + 1")
	res := r.db.WithContext(ctx).
		Model(&account.Account{}).
		Where("account_id = ? AND version = ?", accountID, version).
		Updates(cols)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *AccountRepository) AppendEntry(ctx context.Context, e *account.LedgerEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AccountRepository) ListEntries(ctx context.Context, accountID string, limit int) ([]account.LedgerEntry, error) {
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []account.LedgerEntry
	return out, q.Find(&out).Error
}

// SumEntries adds amounts in Go: SUM() over DECIMAL comes back as float on sqlite.
func (r *AccountRepository) SumEntries(ctx context.Context, accountID string) (account.EntryTotals, error) {
	var rows []account.LedgerEntry
	err := r.db.WithContext(ctx).
		Select("kind", "amount").
		Where("account_id = ?", accountID).
		Find(&rows).Error
	if err != nil {
		return account.EntryTotals{}, err
	}

	t := account.EntryTotals{Net: decimal.Zero, Debits: decimal.Zero}
	for _, e := range rows {
		t.Net = t.Net.Add(e.Amount)
		if e.Kind == account.EntryDebit {
			t.Debits = t.Debits.Sub(e.Amount)
		}
	}
	return t, nil
}
