package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"

	// DefaultCategory is used when a transaction is added without one.
	DefaultCategory = "Geral"
)

type (
	// Kind classifies a transaction as money in or money out.
	Kind string

	// Transaction is a single ledger entry. The date is kept exactly as
	// entered (dd/mm/yyyy by convention, but never validated at write
	// time); entries whose date does not parse are excluded from month
	// views while remaining in the full ledger.
	Transaction struct {
		ID          int64
		Date        string
		Description string
		Category    string
		Kind        Kind
		Amount      decimal.Decimal
	}

	// Goal is a named savings target. Accumulated only ever grows;
	// over-funding past the target is legal.
	Goal struct {
		ID          int64
		Name        string
		Target      decimal.Decimal
		Accumulated decimal.Decimal
	}

	// Subscription is a recurring monthly charge.
	Subscription struct {
		ID     int64
		Name   string
		Amount decimal.Decimal
		Active bool
	}

	// Profile holds the singleton user settings.
	Profile struct {
		MonthlyIncome      decimal.Decimal
		OnboardingComplete bool
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
)

// ParseKind accepts the wire form of a kind, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "receita":
		return Income, nil
	case "expense", "despesa":
		return Expense, nil
	}
	return "", ErrInvalidKind
}

// Signed returns the amount with the sign the kind mandates: expenses
// carry a negative magnitude, income a non-negative one, regardless of
// the sign the caller passed in.
func (k Kind) Signed(amount decimal.Decimal) decimal.Decimal {
	if k == Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

func (t Transaction) Validate() error {
	if t.Kind != Income && t.Kind != Expense {
		return ErrInvalidKind
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyName
	}
	return nil
}

// Progress reports how funded the goal is, clamped to [0,1] for
// display. The accumulated amount itself is never clamped.
func (g Goal) Progress() float64 {
	if !g.Target.IsPositive() {
		return 0
	}
	p, _ := g.Accumulated.Div(g.Target).Float64()
	if p > 1 {
		return 1
	}
	if p < 0 {
		return 0
	}
	return p
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if !g.Target.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

func (s Subscription) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if !s.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}
