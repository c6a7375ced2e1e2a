package errs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinels for errors.Is. Every typed error below matches exactly one of them.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid state transition")
	ErrAccountInactive    = errors.New("account inactive")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrConflict           = errors.New("concurrent update conflict")

	// ErrStaleWrite signals a compare-and-swap that matched no row. It never leaves
	// the usecase layer: the unit of work retries and turns exhaustion into ConflictError.
	ErrStaleWrite = errors.New("stale write")
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every missing or invalid input field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// OrNil returns nil when no field was recorded, so callers can `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s %s not found", e.Entity, e.ID) }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type InvalidTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s %s cannot move from %s to %s", e.Entity, e.ID, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

type AccountInactiveError struct {
	AccountID string
	Status    string
}

func (e *AccountInactiveError) Error() string {
	return fmt.Sprintf("account %s is %s", e.AccountID, e.Status)
}

func (e *AccountInactiveError) Is(target error) bool { return target == ErrAccountInactive }

type InsufficientCreditError struct {
	AccountID   string
	Balance     decimal.Decimal
	Amount      decimal.Decimal
	CreditLimit decimal.Decimal
}

func (e *InsufficientCreditError) Error() string {
	return fmt.Sprintf("account %s: debit of %s exceeds balance %s plus credit limit %s",
		e.AccountID, e.Amount.StringFixed(2), e.Balance.StringFixed(2), e.CreditLimit.StringFixed(2))
}

func (e *InsufficientCreditError) Is(target error) bool { return target == ErrInsufficientCredit }

// StaleWriteError names the row whose compare-and-swap matched nothing.
type StaleWriteError struct {
	Entity string
	ID     string
}

func (e *StaleWriteError) Error() string {
	return fmt.Sprintf("%s %s: stale write", e.Entity, e.ID)
}

func (e *StaleWriteError) Is(target error) bool { return target == ErrStaleWrite }

type ConflictError struct {
	Entity   string
	ID       string
	Attempts int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s changed concurrently; gave up after %d attempts", e.Entity, e.ID, e.Attempts)
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
