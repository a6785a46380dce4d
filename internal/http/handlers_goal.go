package http

import (
	"net/http"

	"financeiro/internal/core"
)

type goalJSON struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Target      string  `json:"target"`
	Accumulated string  `json:"accumulated"`
	Progress    float64 `json:"progress"`
}

func toGoalJSON(g core.Goal) goalJSON {
	return goalJSON{
		ID:          g.ID,
		Name:        g.Name,
		Target:      g.Target.StringFixed(2),
		Accumulated: g.Accumulated.StringFixed(2),
		Progress:    g.Progress(),
	}
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Target string `json:"target"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	g, err := s.store.CreateGoal(r.Context(), sanitizeInput(req.Name), core.ParseAmount(req.Target))
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalJSON(g))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	out := make([]goalJSON, 0, len(goals))
	for _, g := range goals {
		out = append(out, toGoalJSON(g))
	}
	writeJSON(w, http.StatusOK, map[string]any{"goals": out})
}

func (s *Server) handleDepositToGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req struct {
		Amount string `json:"amount"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	g, err := s.store.DepositToGoal(r.Context(), id, core.ParseAmount(req.Amount))
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalJSON(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteGoal(r.Context(), id); err != nil {
		storeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
