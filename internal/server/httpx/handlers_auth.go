package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string `json:"message"`
	User    any    `json:"user"`
	Token   string `json:"token"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	res, err := s.users.Register(r.Context(), req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully.",
		User:    res.User,
		Token:   res.Token,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{
		Message: "Login successful.",
		User:    res.User,
		Token:   res.Token,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		s.writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}

	profile, err := s.users.GetMe(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.writeMessage(w, http.StatusNotFound, "User not found.")
			return
		}
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, profile)
}
