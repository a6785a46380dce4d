// Package http is the JSON surface the UI layer talks to. Every
// handler performs one synchronous store call; the only handler that
// reaches the network is the assist one, and it does so before any
// store access.
package http

import (
	"net/http"
	"time"

	"financeiro/internal/assist"
	"financeiro/internal/ports"
)

type Server struct {
	http.Server
	store       ports.Store
	interpreter *assist.Adapter
	reportDir   string
	now         func() time.Time
}

// NewServer configures routes, returning a ready-to-run http.Server.
// interpreter may be nil, in which case assist requests resolve to no
// result.
func NewServer(addr string, store ports.Store, interpreter *assist.Adapter, reportDir string) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		store:       store,
		interpreter: interpreter,
		reportDir:   reportDir,
		now:         time.Now,
	}

	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("POST /api/transactions", s.traced(s.handleCreateTransaction))
	mux.HandleFunc("GET /api/transactions", s.traced(s.handleListTransactions))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.traced(s.handleDeleteTransaction))
	mux.HandleFunc("GET /api/summary", s.traced(s.handleSummary))
	mux.HandleFunc("GET /api/months", s.traced(s.handleMonths))

	mux.HandleFunc("POST /api/goals", s.traced(s.handleCreateGoal))
	mux.HandleFunc("GET /api/goals", s.traced(s.handleListGoals))
	mux.HandleFunc("POST /api/goals/{id}/deposit", s.traced(s.handleDepositToGoal))
	mux.HandleFunc("DELETE /api/goals/{id}", s.traced(s.handleDeleteGoal))

	mux.HandleFunc("POST /api/subscriptions", s.traced(s.handleAddSubscription))
	mux.HandleFunc("GET /api/subscriptions", s.traced(s.handleListSubscriptions))
	mux.HandleFunc("POST /api/subscriptions/{id}/toggle", s.traced(s.handleToggleSubscription))
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.traced(s.handleDeleteSubscription))

	mux.HandleFunc("GET /api/profile", s.traced(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profile", s.traced(s.handleUpdateProfile))

	mux.HandleFunc("POST /api/reports", s.traced(s.handleExportReport))
	mux.HandleFunc("POST /api/assist/interpret", s.traced(s.handleInterpret))

	return s
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
