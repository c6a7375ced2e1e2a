package account

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_FuelTypes(t *testing.T) {
	a := &Account{}
	if !a.Accepts("diesel") {
		t.Fatalf("account without fuel types must accept any type")
	}

	a.SetFuelTypes([]string{" Diesel", "petrol", "diesel", ""})
	got := a.AcceptedFuelTypes()
	if len(got) != 2 || got[0] != "diesel" || got[1] != "petrol" {
		t.Fatalf("AcceptedFuelTypes = %v, want [diesel petrol]", got)
	}
	if !a.Accepts("DIESEL ") {
		t.Fatalf("Accepts should normalise case and spaces")
	}
	if a.Accepts("lpg") {
		t.Fatalf("lpg is not in the accepted set")
	}
}

func TestAccount_Floor(t *testing.T) {
	a := &Account{CreditLimit: decimal.NewFromInt(500)}
	if !a.Floor().Equal(decimal.NewFromInt(-500)) {
		t.Fatalf("Floor = %s, want -500", a.Floor())
	}
}

func TestStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusActive, StatusSuspended, true},
		{StatusActive, StatusClosed, true},
		{StatusActive, StatusActive, false},
		{StatusSuspended, StatusActive, true},
		{StatusSuspended, StatusClosed, true},
		{StatusClosed, StatusActive, false},
		{StatusClosed, StatusSuspended, false},
		{Status("frozen"), StatusActive, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}
