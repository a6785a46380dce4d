package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
)

func sampleMonth() (core.MonthKey, []core.Transaction) {
	month := core.MonthKey{Month: 11, Year: 2024}
	txs := []core.Transaction{
		{ID: 2, Date: "01/11/2024", Description: "Internet", Kind: core.Expense,
			Amount: decimal.RequireFromString("-100.00")},
		{ID: 1, Date: "05/11/2024", Description: "Salário", Kind: core.Income,
			Amount: decimal.RequireFromString("4700.00")},
	}
	return month, txs
}

func TestExportWritesStatement(t *testing.T) {
	dir := t.TempDir()
	month, txs := sampleMonth()
	now := time.Date(2024, time.December, 1, 9, 30, 0, 0, time.UTC)

	path, err := Export(dir, txs, month, now)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Base(path) != "extrato_11_2024.txt" {
		t.Errorf("file name = %q, want extrato_11_2024.txt", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read statement: %v", err)
	}
	content := string(data)

	for _, want := range []string{
		"Extrato 11/2024",
		"Gerado em: 01/12/2024 09:30",
		"Saldo: 4.600,00",
		"Internet",
		"Salário",
		"4.700,00",
		"-100,00",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("statement missing %q:\n%s", want, content)
		}
	}

	// Rows come out in the order supplied by the caller.
	if strings.Index(content, "Internet") > strings.Index(content, "Salário") {
		t.Error("statement rows not in supplied order")
	}
}

func TestExportReconciliation(t *testing.T) {
	_, txs := sampleMonth()
	balance := Balance(txs)
	sum := core.Summarize(txs)
	if !balance.Equal(sum.Balance) {
		t.Errorf("report balance %s != summary balance %s", balance, sum.Balance)
	}
}

func TestExportTruncatesLongDescriptions(t *testing.T) {
	dir := t.TempDir()
	month := core.MonthKey{Month: 1, Year: 2025}
	long := strings.Repeat("x", 80)
	txs := []core.Transaction{
		{ID: 1, Date: "02/01/2025", Description: long, Kind: core.Expense,
			Amount: decimal.RequireFromString("-1.00")},
	}

	path, err := Export(dir, txs, month, time.Now())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), long) {
		t.Error("long description was not truncated")
	}
	if !strings.Contains(string(data), strings.Repeat("x", 32)) {
		t.Error("truncated description missing")
	}
}

func TestExportFailureLeavesNoFile(t *testing.T) {
	// A regular file where the directory should be makes every write
	// under it fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "reports")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	month, txs := sampleMonth()
	if _, err := Export(blocked, txs, month, time.Now()); err == nil {
		t.Fatal("export into a blocked path should fail")
	}
	if _, err := os.Stat(filepath.Join(blocked, FileName(month))); err == nil {
		t.Error("a statement file exists despite the failure")
	}
}

func TestFileName(t *testing.T) {
	got := FileName(core.MonthKey{Month: 3, Year: 2024})
	if got != "extrato_03_2024.txt" {
		t.Errorf("FileName = %q, want extrato_03_2024.txt", got)
	}
}
