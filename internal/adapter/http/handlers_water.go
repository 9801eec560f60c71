package adapthttp

import (
	"net/http"
)

func (s *Server) handleWaterToday(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Water.Today(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleWaterEvent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		DeltaMl float64 `json:"deltaMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.svc.Water.Add(r.Context(), userIDFrom(r), body.DeltaMl)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleWaterGoal(w http.ResponseWriter, r *http.Request) {
	var body struct {
		GoalMl float64 `json:"goalMl"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.svc.Water.SetGoal(r.Context(), userIDFrom(r), body.GoalMl)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleWaterHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Water.History(r.Context(), userIDFrom(r), intQuery(r, "limit", 30))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
