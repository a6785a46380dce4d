// Package report renders a month's reconciled statement to a
// fixed-layout text document.
package report

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
)

const (
	title = "Andy Financeiro"

	dateWidth  = 10
	descWidth  = 32
	valueWidth = 14
)

// FileName is the statement naming convention: extrato_<mm>_<yyyy>.txt.
func FileName(month core.MonthKey) string {
	return fmt.Sprintf("extrato_%02d_%04d.txt", month.Month, month.Year)
}

// Export writes the statement for one month into dir and returns the
// final path. Transactions are printed in the order supplied; the
// balance in the header is the exact sum of the amount column. The
// file is written to a temp name and renamed in place, so a failed
// export leaves no readable partial file behind.
func Export(dir string, txs []core.Transaction, month core.MonthKey, now time.Time) (string, error) {
	var buf bytes.Buffer
	render(&buf, txs, month, now)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".extrato-*")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close report: %w", err)
	}

	path := filepath.Join(dir, FileName(month))
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("publish report: %w", err)
	}

	slog.Info("Statement exported", "path", path, "month", month.Label(), "entries", len(txs))
	return path, nil
}

// Balance is the reconciliation figure shown in the header band: the
// exact sum of the listed amounts.
func Balance(txs []core.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(tx.Amount)
	}
	return total
}

func render(buf *bytes.Buffer, txs []core.Transaction, month core.MonthKey, now time.Time) {
	fmt.Fprintln(buf, title)
	fmt.Fprintf(buf, "Extrato %s\n", month.Label())
	fmt.Fprintf(buf, "Gerado em: %s\n", now.Format("02/01/2006 15:04"))
	fmt.Fprintf(buf, "Saldo: %s\n", core.FormatAmount(Balance(txs)))
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-*s  %-*s  %*s\n", dateWidth, "Data", descWidth, "Descrição", valueWidth, "Valor")
	fmt.Fprintln(buf, strings.Repeat("-", dateWidth+descWidth+valueWidth+4))
	for _, tx := range txs {
		fmt.Fprintf(buf, "%-*s  %-*s  %*s\n",
			dateWidth, truncate(tx.Date, dateWidth),
			descWidth, truncate(tx.Description, descWidth),
			valueWidth, core.FormatAmount(tx.Amount))
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
