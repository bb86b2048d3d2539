// Package httpx implements the HTTP surface of the task manager: routing,
// access middleware, and JSON request/response handling.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/ratelimit"
	"github.com/dmitrijs2005/taskmanager/internal/server/services"
)

// UserProvider is the account-side surface the handlers need.
type UserProvider interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	GetMe(ctx context.Context, userID int64) (*models.UserProfile, error)
}

// TaskProvider is the task-side surface the handlers need.
type TaskProvider interface {
	List(ctx context.Context, userID int64) ([]*models.Task, error)
	Create(ctx context.Context, userID int64, title string, description *string) (*models.Task, error)
	Get(ctx context.Context, userID, taskID int64) (*models.Task, error)
	Update(ctx context.Context, userID, taskID int64, upd services.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
	ToggleComplete(ctx context.Context, userID, taskID int64) (*models.Task, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   UserProvider
	tasks   TaskProvider
	tokens  *auth.TokenManager
	limiter *ratelimit.AuthLimiter
}

func NewServer(address string, l logging.Logger, users UserProvider, tasks TaskProvider, tokens *auth.TokenManager, limiter *ratelimit.AuthLimiter) *Server {
	return &Server{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   users,
		tasks:   tasks,
		tokens:  tokens,
		limiter: limiter,
	}
}

// Router assembles the full route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.cors)

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Task Manager API is running!"))
	}).Methods(http.MethodGet)

	authR := r.PathPrefix("/api/auth").Subrouter()
	authR.Handle("/register", s.rateLimit(http.HandlerFunc(s.handleRegister))).Methods(http.MethodPost, http.MethodOptions)
	authR.Handle("/login", s.rateLimit(http.HandlerFunc(s.handleLogin))).Methods(http.MethodPost, http.MethodOptions)
	authR.Handle("/me", s.authenticate(http.HandlerFunc(s.handleMe))).Methods(http.MethodGet, http.MethodOptions)

	tasksR := r.PathPrefix("/api/tasks").Subrouter()
	tasksR.Use(s.authenticate)
	tasksR.HandleFunc("", s.handleListTasks).Methods(http.MethodGet, http.MethodOptions)
	tasksR.HandleFunc("", s.handleCreateTask).Methods(http.MethodPost)
	tasksR.HandleFunc("/{id:[0-9]+}", s.handleGetTask).Methods(http.MethodGet, http.MethodOptions)
	tasksR.HandleFunc("/{id:[0-9]+}", s.handleUpdateTask).Methods(http.MethodPut, http.MethodPatch)
	tasksR.HandleFunc("/{id:[0-9]+}", s.handleDeleteTask).Methods(http.MethodDelete)
	tasksR.HandleFunc("/{id:[0-9]+}/complete", s.handleToggleTask).Methods(http.MethodPatch, http.MethodOptions)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeMessage(w, http.StatusNotFound, "Not found.")
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
