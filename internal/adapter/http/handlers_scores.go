package adapthttp

import (
	"net/http"

	"healthstate/internal/app"
)

func (s *Server) handleScoresToday(w http.ResponseWriter, r *http.Request) {
	var req app.ScoreRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rep, err := s.svc.Scores.Today(r.Context(), userIDFrom(r), req)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleChartsDaily(w http.ResponseWriter, r *http.Request) {
	days := intQuery(r, "days", 30)
	points, err := s.svc.Charts.GetDaily(r.Context(), userIDFrom(r), days)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days, "points": points})
}
