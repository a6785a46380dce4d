package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
	"financeiro/internal/ports"
)

// The memory store must mirror the SQLite repository's semantics; the
// HTTP handler tests rely on that.

func TestMemoryStoreLedgerParity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	exp, err := store.AddTransaction(ctx, core.Transaction{
		Date: "01/11/2024", Description: "Internet", Kind: core.Expense,
		Amount: decimal.RequireFromString("100.00"),
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !exp.Amount.IsNegative() {
		t.Errorf("expense amount = %s, want negative", exp.Amount)
	}

	if _, err := store.AddTransaction(ctx, core.Transaction{
		Date: "quando der", Description: "Ajuste", Kind: core.Expense,
		Amount: decimal.NewFromInt(5),
	}); err != nil {
		t.Fatalf("add malformed date: %v", err)
	}

	nov := core.MonthKey{Month: 11, Year: 2024}
	filtered, err := store.ListTransactions(ctx, &nov)
	if err != nil {
		t.Fatalf("list month: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != exp.ID {
		t.Errorf("month view = %v, want just the parseable entry", filtered)
	}

	now := time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC)
	months, err := store.DistinctMonths(ctx, now)
	if err != nil {
		t.Fatalf("months: %v", err)
	}
	want := []core.MonthKey{{Month: 11, Year: 2024}, {Month: 12, Year: 2024}}
	if len(months) != 2 || months[0] != want[0] || months[1] != want[1] {
		t.Errorf("months = %v, want %v", months, want)
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.DepositToGoal(ctx, 1, decimal.NewFromInt(10)); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("deposit: err = %v, want ErrNotFound", err)
	}
	if _, err := store.ToggleSubscription(ctx, 1); !errors.Is(err, ports.ErrNotFound) {
		t.Errorf("toggle: err = %v, want ErrNotFound", err)
	}
	if err := store.DeleteTransaction(ctx, 1); err != nil {
		t.Errorf("delete transaction: %v, want no-op", err)
	}
	if err := store.DeleteGoal(ctx, 1); err != nil {
		t.Errorf("delete goal: %v, want no-op", err)
	}
	if err := store.DeleteSubscription(ctx, 1); err != nil {
		t.Errorf("delete subscription: %v, want no-op", err)
	}
}
