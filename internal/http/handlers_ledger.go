package http

import (
	"log/slog"
	"net/http"
	"sort"

	"financeiro/internal/core"
	"financeiro/internal/report"
)

type transactionJSON struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Display     string `json:"display"`
}

func toTransactionJSON(tx core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          tx.ID,
		Date:        tx.Date,
		Description: tx.Description,
		Category:    tx.Category,
		Kind:        string(tx.Kind),
		Amount:      tx.Amount.StringFixed(2),
		Display:     core.FormatAmount(tx.Amount),
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string `json:"date"`
		Description string `json:"description"`
		Category    string `json:"category"`
		Kind        string `json:"kind"`
		Amount      string `json:"amount"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid_input")
		return
	}

	date := sanitizeInput(req.Date)
	if date == "" {
		date = core.DateOf(s.now())
	}

	tx, err := s.store.AddTransaction(r.Context(), core.Transaction{
		Date:        date,
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Kind:        kind,
		Amount:      core.ParseAmount(req.Amount),
	})
	if err != nil {
		storeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionJSON(tx))
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid_month")
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), month)
	if err != nil {
		storeError(w, r, err)
		return
	}

	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toTransactionJSON(tx))
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": out})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid_month")
		return
	}
	if month == nil {
		current := core.CurrentMonth(s.now())
		month = &current
	}

	txs, err := s.store.ListTransactions(r.Context(), month)
	if err != nil {
		storeError(w, r, err)
		return
	}

	sum := core.Summarize(txs)
	writeJSON(w, http.StatusOK, map[string]any{
		"month":   month.Label(),
		"income":  sum.Income.StringFixed(2),
		"expense": sum.Expense.StringFixed(2),
		"balance": sum.Balance.StringFixed(2),
		"display": map[string]string{
			"income":  core.FormatAmount(sum.Income),
			"expense": core.FormatAmount(sum.Expense),
			"balance": core.FormatAmount(sum.Balance),
		},
	})
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	months, err := s.store.DistinctMonths(r.Context(), s.now())
	if err != nil {
		storeError(w, r, err)
		return
	}
	labels := make([]string, 0, len(months))
	for _, m := range months {
		labels = append(labels, m.Label())
	}
	writeJSON(w, http.StatusOK, map[string]any{"months": labels})
}

func (s *Server) handleExportReport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Month string `json:"month"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	month, ok := core.ParseMonthKey(req.Month)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "invalid_month")
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), &month)
	if err != nil {
		storeError(w, r, err)
		return
	}

	// The store hands back newest-first; a statement reads
	// chronologically. Every date here parsed, or the month filter
	// would have dropped it.
	sort.SliceStable(txs, func(i, j int) bool {
		di, _ := core.ParseDate(txs[i].Date)
		dj, _ := core.ParseDate(txs[j].Date)
		if di != dj {
			return di.Time().Before(dj.Time())
		}
		return txs[i].ID < txs[j].ID
	})

	path, err := report.Export(s.reportDir, txs, month, s.now())
	if err != nil {
		slog.ErrorContext(r.Context(), "Statement export failed", "error", err, "month", month.Label())
		writeError(w, http.StatusInternalServerError, "report_failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"file":    path,
		"balance": report.Balance(txs).StringFixed(2),
	})
}
