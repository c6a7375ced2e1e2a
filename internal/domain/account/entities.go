package account

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Table: bulk_fuel_accounts
type Account struct {
	ID        uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	AccountID string `gorm:"column:account_id;type:char(32);not null;uniqueIndex:ux_bulk_fuel_accounts_account_id" json:"account_id"`

	AccountName   string `gorm:"column:account_name;size:120;not null" json:"account_name"`
	SupplierName  string `gorm:"column:supplier_name;size:120" json:"supplier_name"`
	AccountNumber string `gorm:"column:account_number;size:64" json:"account_number"`
	ContactPerson string `gorm:"column:contact_person;size:120" json:"contact_person,omitempty"`
	ContactPhone  string `gorm:"column:contact_phone;size:32" json:"contact_phone,omitempty"`
	ContactEmail  string `gorm:"column:contact_email;size:120" json:"contact_email,omitempty"`

	InitialBalance decimal.Decimal `gorm:"column:initial_balance;type:decimal(18,2);not null" json:"initial_balance"`
	CurrentBalance decimal.Decimal `gorm:"column:current_balance;type:decimal(18,2);not null" json:"current_balance"`
	CreditLimit    decimal.Decimal `gorm:"column:credit_limit;type:decimal(18,2);not null;default:0" json:"credit_limit"`
	FuelTypes      datatypes.JSON  `gorm:"column:fuel_types" json:"fuel_types"`
	Status         Status          `gorm:"column:status;size:16;not null;default:'active'" json:"status"`

	// Bumped by every balance or status write; the compare-and-swap key.
	Version uint64 `gorm:"column:version;not null;default:1" json:"version"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "bulk_fuel_accounts" }

// AcceptedFuelTypes decodes fuel_types. Empty means every fuel type is accepted.
func (a *Account) AcceptedFuelTypes() []string {
	if len(a.FuelTypes) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(a.FuelTypes, &out); err != nil {
		return nil
	}
	return out
}

func (a *Account) SetFuelTypes(types []string) {
	seen := make(map[string]struct{}, len(types))
	norm := make([]string, 0, len(types))
	for _, t := range types {
		t = NormalizeFuelType(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		norm = append(norm, t)
	}
	b, _ := json.Marshal(norm)
	a.FuelTypes = datatypes.JSON(b)
}

func (a *Account) Accepts(fuelType string) bool {
	types := a.AcceptedFuelTypes()
	if len(types) == 0 {
		return true
	}
	fuelType = NormalizeFuelType(fuelType)
	for _, t := range types {
		if t == fuelType {
			return true
		}
	}
	return false
}

// Floor is the lowest balance a debit may leave behind.
func (a *Account) Floor() decimal.Decimal { return a.CreditLimit.Neg() }

func NormalizeFuelType(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

type EntryKind string

const (
	EntryDebit      EntryKind = "debit"
	EntryAdjustment EntryKind = "adjustment"
)

// Table: ledger_entries (append-only)
type LedgerEntry struct {
	ID           uint64          `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EntryID      string          `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_ledger_entries_entry_id" json:"entry_id"`
	AccountID    string          `gorm:"column:account_id;type:char(32);not null;index:idx_ledger_entries_account" json:"account_id"`
	Kind         EntryKind       `gorm:"column:kind;size:16;not null" json:"kind"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"` // signed delta
	BalanceAfter decimal.Decimal `gorm:"column:balance_after;type:decimal(18,2);not null" json:"balance_after"`
	FuelRecordID *string         `gorm:"column:fuel_record_id;type:char(32);index" json:"fuel_record_id,omitempty"`
	Reason       string          `gorm:"column:reason;type:text" json:"reason,omitempty"`
	ActorID      string          `gorm:"column:actor_id;size:64" json:"actor_id,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (LedgerEntry) TableName() string { return "ledger_entries" }

// EntryTotals sums the journal of one account.
type EntryTotals struct {
	Net    decimal.Decimal // every entry
	Debits decimal.Decimal // debit entries only, as a positive amount
}
