package adapthttp

import (
	"net/http"
)

func (s *Server) handleWeightGet(w http.ResponseWriter, r *http.Request) {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "kg"
	}
	v, err := s.svc.Weight.Weight(r.Context(), userIDFrom(r), unit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"value": v, "unit": unit})
}

func (s *Server) handleWeightPut(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Value float64 `json:"value"`
		Unit  string  `json:"unit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	u, err := s.svc.Weight.RecordWeight(r.Context(), userIDFrom(r), body.Value, body.Unit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"weightKg": u.WeightKg})
}
