package adapthttp

import (
	"net/http"

	"healthstate/internal/app"
	"healthstate/internal/domain"
)

// redacted drops the stored secret from API responses.
func redacted(u domain.UserProfile) domain.UserProfile {
	u.Password = ""
	return u
}

func (s *Server) handleUsersList(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.Users.ListUsers(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	out := make([]domain.UserProfile, len(users))
	for i, u := range users {
		out[i] = redacted(u)
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": out})
}

func (s *Server) handleUsersAdd(w http.ResponseWriter, r *http.Request) {
	var body domain.UserProfile
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	u, err := s.svc.Users.AddUser(r.Context(), body)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, redacted(u))
}

func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.GetUser(r.Context(), userIDFrom(r))
	if err == nil && u == nil {
		err = app.ErrUserNotFound
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redacted(*u))
}

func (s *Server) handleUserUpdate(w http.ResponseWriter, r *http.Request) {
	var patch domain.ProfilePatch
	if err := parseJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	id := userIDFrom(r)
	if err := s.svc.Users.UpdateUser(r.Context(), id, patch); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	u, err := s.svc.Users.GetUser(r.Context(), id)
	if err == nil && u == nil {
		err = app.ErrUserNotFound
	}
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, redacted(*u))
}

func (s *Server) handleSessionGet(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.CurrentUser(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if u == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": redacted(*u)})
}

// handleLogin makes the matching user current and brings their counters
// onto today.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Identifier string `json:"identifier"`
		Password   string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	u, err := s.svc.Users.Login(r.Context(), body.Identifier, body.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	res := s.svc.Rollover.EnsureDailyReset(r.Context(), u.ID)
	writeJSON(w, http.StatusOK, map[string]any{"user": redacted(*u), "rollover": res})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Users.Logout(r.Context()); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRollover(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Rollover.EnsureDailyReset(r.Context(), userIDFrom(r)))
}
