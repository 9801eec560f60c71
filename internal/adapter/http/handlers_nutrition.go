package adapthttp

import (
	"net/http"

	"healthstate/internal/domain"
)

func (s *Server) handleNutritionToday(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Nutrition.Today(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": rec, "calories": rec.Calories()})
}

func (s *Server) handleNutritionLog(w http.ResponseWriter, r *http.Request) {
	var item domain.FoodItem
	if err := parseJSON(r, &item); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.svc.Nutrition.LogFood(r.Context(), userIDFrom(r), item)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": rec, "calories": rec.Calories()})
}

func (s *Server) handleNutritionUndoLast(w http.ResponseWriter, r *http.Request) {
	undone, rec, err := s.svc.Nutrition.UndoLast(r.Context(), userIDFrom(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "day": rec})
}

func (s *Server) handleNutritionTarget(w http.ResponseWriter, r *http.Request) {
	var body struct {
		TargetCalories float64 `json:"targetCalories"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	rec, err := s.svc.Nutrition.SetTarget(r.Context(), userIDFrom(r), body.TargetCalories)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"day": rec})
}

func (s *Server) handleNutritionHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.Nutrition.History(r.Context(), userIDFrom(r), intQuery(r, "limit", 30))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
