package http

import (
	"net/http"

	"financeiro/internal/calendar"
	"financeiro/internal/core"
)

// handleInterpret asks the assist adapter to read a sentence into a
// candidate record. Nothing is persisted here: the suggestion goes
// back to the UI, which may confirm it into a normal transaction or a
// calendar reminder via the returned deep link.
func (s *Server) handleInterpret(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	suggestion := s.interpreter.Interpret(r.Context(), req.Text)
	if suggestion == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	resp := map[string]any{
		"name":   suggestion.Name,
		"amount": suggestion.Amount.StringFixed(2),
		"date":   suggestion.Date,
	}
	if d, ok := core.ParseDate(suggestion.Date); ok {
		resp["calendar_link"] = calendar.ReminderLink(suggestion.Name, suggestion.Amount, d)
	}
	writeJSON(w, http.StatusOK, resp)
}
