package http

import (
	"net/http"

	"financeiro/internal/core"
)

type subscriptionJSON struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Active bool   `json:"active"`
}

func toSubscriptionJSON(sub core.Subscription) subscriptionJSON {
	return subscriptionJSON{
		ID:     sub.ID,
		Name:   sub.Name,
		Amount: sub.Amount.StringFixed(2),
		Active: sub.Active,
	}
}

func (s *Server) handleAddSubscription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Amount string `json:"amount"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	sub, err := s.store.AddSubscription(r.Context(), sanitizeInput(req.Name), core.ParseAmount(req.Amount))
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubscriptionJSON(sub))
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	subs, err := s.store.ListSubscriptions(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	cost, err := s.store.MonthlyCost(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}

	out := make([]subscriptionJSON, 0, len(subs))
	for _, sub := range subs {
		out = append(out, toSubscriptionJSON(sub))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subscriptions": out,
		"monthly_cost":  cost.StringFixed(2),
	})
}

func (s *Server) handleToggleSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	sub, err := s.store.ToggleSubscription(r.Context(), id)
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionJSON(sub))
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteSubscription(r.Context(), id); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
