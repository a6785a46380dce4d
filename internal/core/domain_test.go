package core

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestKindSigned(t *testing.T) {
	cases := []struct {
		kind Kind
		in   string
		want string
	}{
		{Expense, "100", "-100"},
		{Expense, "-100", "-100"},
		{Income, "4700", "4700"},
		{Income, "-4700", "4700"},
		{Income, "0", "0"},
		{Expense, "0", "0"},
	}
	for _, tc := range cases {
		got := tc.kind.Signed(decimal.RequireFromString(tc.in))
		if !got.Equal(decimal.RequireFromString(tc.want)) {
			t.Errorf("%s.Signed(%s) = %s, want %s", tc.kind, tc.in, got, tc.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"income", Income, true},
		{"Income", Income, true},
		{"EXPENSE", Expense, true},
		{"receita", Income, true},
		{"despesa", Expense, true},
		{" expense ", Expense, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseKind(%q) expected error", tc.in)
		}
	}
}

func TestGoalProgress(t *testing.T) {
	cases := []struct {
		name        string
		target      string
		accumulated string
		want        float64
	}{
		{"empty", "1000", "0", 0},
		{"half", "1000", "500", 0.5},
		{"met", "1000", "1000", 1},
		{"overfunded clamps to 1", "1000", "2500", 1},
		{"zero target", "0", "500", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := Goal{
				Target:      decimal.RequireFromString(tc.target),
				Accumulated: decimal.RequireFromString(tc.accumulated),
			}
			got := g.Progress()
			if got != tc.want {
				t.Errorf("Progress() = %v, want %v", got, tc.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("Progress() = %v outside [0,1]", got)
			}
		})
	}
}

func TestGoalValidate(t *testing.T) {
	if err := (Goal{Name: "Viagem", Target: decimal.NewFromInt(1000)}).Validate(); err != nil {
		t.Errorf("valid goal rejected: %v", err)
	}
	if err := (Goal{Name: "Viagem", Target: decimal.Zero}).Validate(); err != ErrInvalidAmount {
		t.Errorf("zero target should be ErrInvalidAmount, got %v", err)
	}
	if err := (Goal{Name: "Viagem", Target: decimal.NewFromInt(-5)}).Validate(); err != ErrInvalidAmount {
		t.Errorf("negative target should be ErrInvalidAmount, got %v", err)
	}
	if err := (Goal{Name: "  ", Target: decimal.NewFromInt(10)}).Validate(); err != ErrEmptyName {
		t.Errorf("blank name should be ErrEmptyName, got %v", err)
	}
}

func TestSubscriptionValidate(t *testing.T) {
	if err := (Subscription{Name: "Netflix", Amount: decimal.RequireFromString("39.90")}).Validate(); err != nil {
		t.Errorf("valid subscription rejected: %v", err)
	}
	if err := (Subscription{Name: "Netflix", Amount: decimal.Zero}).Validate(); err != ErrInvalidAmount {
		t.Errorf("zero amount should be ErrInvalidAmount, got %v", err)
	}
	if err := (Subscription{Name: "", Amount: decimal.NewFromInt(10)}).Validate(); err != ErrEmptyName {
		t.Errorf("empty name should be ErrEmptyName, got %v", err)
	}
}
