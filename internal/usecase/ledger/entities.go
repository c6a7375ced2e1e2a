package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"fleet-fuel-backend/internal/domain/account"
)

type CreateAccountInput struct {
	AccountName    string
	SupplierName   string
	AccountNumber  string
	ContactPerson  string
	ContactPhone   string
	ContactEmail   string
	InitialBalance decimal.Decimal
	CreditLimit    decimal.Decimal
	FuelTypes      []string
	CreatedBy      string
}

// DebitMeta travels with a debit into its ledger entry.
type DebitMeta struct {
	FuelRecordID string
	// FuelType, when set, must be accepted by the account.
	FuelType string
	ActorID  string
}

type AccountDTO struct {
	AccountID      string          `json:"account_id"`
	AccountName    string          `json:"account_name"`
	SupplierName   string          `json:"supplier_name,omitempty"`
	AccountNumber  string          `json:"account_number,omitempty"`
	ContactPerson  string          `json:"contact_person,omitempty"`
	ContactPhone   string          `json:"contact_phone,omitempty"`
	ContactEmail   string          `json:"contact_email,omitempty"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
	CreditLimit    decimal.Decimal `json:"credit_limit"`
	FuelTypes      []string        `json:"fuel_types"`
	Status         string          `json:"status"`
	Version        uint64          `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type EntryDTO struct {
	EntryID      string          `json:"entry_id"`
	Kind         string          `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	FuelRecordID *string         `json:"fuel_record_id,omitempty"`
	Reason       string          `json:"reason,omitempty"`
	ActorID      string          `json:"actor_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// Reconciliation recomputes both ledger identities for one account:
//
//	current_balance == initial_balance + sum(entries)
//	sum(debits)     == sum(total_cost of fuel records charged to the account)
type Reconciliation struct {
	AccountID       string          `json:"account_id"`
	InitialBalance  decimal.Decimal `json:"initial_balance"`
	CurrentBalance  decimal.Decimal `json:"current_balance"`
	EntriesNet      decimal.Decimal `json:"entries_net"`
	ExpectedBalance decimal.Decimal `json:"expected_balance"`
	BalanceDrift    decimal.Decimal `json:"balance_drift"`
	DebitTotal      decimal.Decimal `json:"debit_total"`
	FuelCostTotal   decimal.Decimal `json:"fuel_cost_total"`
	DebitDrift      decimal.Decimal `json:"debit_drift"`
	Consistent      bool            `json:"consistent"`
}

func toDTO(a *account.Account) *AccountDTO {
	types := a.AcceptedFuelTypes()
	if types == nil {
		types = []string{}
	}
	return &AccountDTO{
		AccountID:      a.AccountID,
		AccountName:    a.AccountName,
		SupplierName:   a.SupplierName,
		AccountNumber:  a.AccountNumber,
		ContactPerson:  a.ContactPerson,
		ContactPhone:   a.ContactPhone,
		ContactEmail:   a.ContactEmail,
		InitialBalance: a.InitialBalance,
		CurrentBalance: a.CurrentBalance,
		CreditLimit:    a.CreditLimit,
		FuelTypes:      types,
		Status:         string(a.Status),
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toEntryDTO(e *account.LedgerEntry) EntryDTO {
	return EntryDTO{
		EntryID:      e.EntryID,
		Kind:         string(e.Kind),
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		FuelRecordID: e.FuelRecordID,
		Reason:       e.Reason,
		ActorID:      e.ActorID,
		CreatedAt:    e.CreatedAt,
	}
}
