package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskmanager/internal/common"
)

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, messageResponse{Message: message})
}

// writeError translates a service error into the client-facing status and
// message. Anything unrecognized is a 500 with a generic message; details
// stay in the server log.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		s.writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrAlreadyExists):
		s.writeMessage(w, http.StatusBadRequest, "User already exists.")
	case errors.Is(err, common.ErrInvalidCredentials):
		s.writeMessage(w, http.StatusBadRequest, "Invalid email or password.")
	case errors.Is(err, common.ErrNoToken):
		s.writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
	case errors.Is(err, common.ErrTokenInvalid), errors.Is(err, common.ErrTokenExpired):
		s.writeMessage(w, http.StatusForbidden, "Invalid or expired token")
	case errors.Is(err, common.ErrNotFound):
		s.writeMessage(w, http.StatusNotFound, "Task not found")
	case errors.Is(err, common.ErrRateLimited):
		s.writeMessage(w, http.StatusTooManyRequests, "Too many requests, please try again later.")
	default:
		s.writeMessage(w, http.StatusInternalServerError, "Internal server error.")
	}
}
