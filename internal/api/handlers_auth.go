package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/scarevault/scarevault/internal/auth"
	"github.com/scarevault/scarevault/internal/models"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSetupCheck reports whether first-run setup is still required.
func (s *Server) handleSetupCheck(w http.ResponseWriter, r *http.Request) {
	count, err := s.userRepo.Count()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to check setup state")
		return
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]bool{
		"needs_setup": count == 0,
	}})
}

// handleSetup creates the first admin account. Rejected once any user
// exists.
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	count, err := s.userRepo.Count()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to check setup state")
		return
	}
	if count > 0 {
		s.respondError(w, http.StatusConflict, "setup already completed")
		return
	}

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || len(req.Password) < 8 {
		s.respondError(w, http.StatusBadRequest, "username and a password of at least 8 characters required")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		s.respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	s.respondJSON(w, http.StatusCreated, Response{Success: true, Data: user})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if err := s.userRepo.CreateSession(token, user.ID, user.Role, time.Now().Add(auth.SessionTTL)); err != nil {
		s.respondError(w, http.StatusInternalServerError, "login failed")
		return
	}

	s.respondJSON(w, http.StatusOK, Response{Success: true, Data: map[string]interface{}{
		"token": token,
		"user":  user,
	}})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := extractToken(r); token != "" {
		s.userRepo.DeleteSession(token)
	}
	s.respondJSON(w, http.StatusOK, Response{Success: true})
}
