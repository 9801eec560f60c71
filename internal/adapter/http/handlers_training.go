package adapthttp

import (
	"errors"
	"net/http"

	"healthstate/internal/domain"
)

func (s *Server) handleWorkoutsRecent(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Workouts.Recent(r.Context(), userIDFrom(r), intQuery(r, "limit", 20))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleWorkoutsLog(w http.ResponseWriter, r *http.Request) {
	var e domain.WorkoutEntry
	if err := parseJSON(r, &e); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	saved, err := s.svc.Workouts.Log(r.Context(), userIDFrom(r), e)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleLabsList(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Labs.List(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleLabsAdd accepts testosterone in either unit and stores nmol/L.
func (s *Server) handleLabsAdd(w http.ResponseWriter, r *http.Request) {
	var body struct {
		domain.LabEntry
		TestosteroneUnit string `json:"testosteroneUnit"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	e := body.LabEntry
	switch body.TestosteroneUnit {
	case "", "nmol/L":
	case "ng/dL":
		if e.Testosterone != nil {
			v := domain.ConvertTestosterone(*e.Testosterone, "ng/dL", "nmol/L")
			e.Testosterone = &v
		}
	default:
		writeError(w, http.StatusBadRequest, errors.New("testosteroneUnit must be \"nmol/L\" or \"ng/dL\""))
		return
	}
	saved, err := s.svc.Labs.Add(r.Context(), userIDFrom(r), e)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
