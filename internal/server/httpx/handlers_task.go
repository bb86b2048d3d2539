package httpx

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/services"
)

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// requireClaims returns the authenticated identity or writes a 401. The
// access middleware guarantees presence on protected routes; this is the
// backstop for misconfigured wiring.
func (s *Server) requireClaims(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		s.writeMessage(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return nil, false
	}
	return claims, true
}

func taskID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	tasks, err := s.tasks.List(r.Context(), claims.UserID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := s.tasks.Create(r.Context(), claims.UserID, req.Title, req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	id, err := taskID(r)
	if err != nil {
		s.writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := s.tasks.Get(r.Context(), claims.UserID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	id, err := taskID(r)
	if err != nil {
		s.writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeMessage(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	task, err := s.tasks.Update(r.Context(), claims.UserID, id, services.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	id, err := taskID(r)
	if err != nil {
		s.writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}

	if err := s.tasks.Delete(r.Context(), claims.UserID, id); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeMessage(w, http.StatusOK, "Task deleted successfully")
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	claims, ok := s.requireClaims(w, r)
	if !ok {
		return
	}

	id, err := taskID(r)
	if err != nil {
		s.writeMessage(w, http.StatusNotFound, "Task not found")
		return
	}

	task, err := s.tasks.ToggleComplete(r.Context(), claims.UserID, id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, task)
}
