package http

import (
	"net/http"

	"financeiro/internal/core"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Profile(r.Context())
	if err != nil {
		storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"monthly_income":      p.MonthlyIncome.StringFixed(2),
		"onboarding_complete": p.OnboardingComplete,
	})
}

// handleUpdateProfile overwrites whichever keys the request carries;
// last write wins, no history.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MonthlyIncome      *string `json:"monthly_income"`
		OnboardingComplete *bool   `json:"onboarding_complete"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	if req.MonthlyIncome != nil {
		if err := s.store.SetMonthlyIncome(r.Context(), core.ParseAmount(*req.MonthlyIncome)); err != nil {
			storeError(w, r, err)
			return
		}
	}
	if req.OnboardingComplete != nil {
		if err := s.store.SetOnboardingComplete(r.Context(), *req.OnboardingComplete); err != nil {
			storeError(w, r, err)
			return
		}
	}

	s.handleGetProfile(w, r)
}
