package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
)

func TestOpenMemory(t *testing.T) {
	store, err := Open(Config{Type: Memory})
	if err != nil {
		t.Fatalf("open memory backend: %v", err)
	}
	defer store.Close()

	if _, err := store.AddTransaction(context.Background(), core.Transaction{
		Date: "01/11/2024", Description: "x", Kind: core.Income,
		Amount: decimal.NewFromInt(1),
	}); err != nil {
		t.Errorf("memory store unusable: %v", err)
	}
}

func TestOpenSQLite(t *testing.T) {
	store, err := Open(Config{
		Type:         SQLite,
		SQLiteDBPath: filepath.Join(t.TempDir(), "test.db"),
	})
	if err != nil {
		t.Fatalf("open sqlite backend: %v", err)
	}
	defer store.Close()
}

func TestOpenInvalidType(t *testing.T) {
	if _, err := Open(Config{Type: "postgres"}); err == nil {
		t.Fatal("expected error for invalid backend type")
	}
}

func TestTypeIsValid(t *testing.T) {
	if !SQLite.IsValid() || !Memory.IsValid() {
		t.Error("built-in types should be valid")
	}
	if Type("postgres").IsValid() {
		t.Error("unknown type should be invalid")
	}
}
