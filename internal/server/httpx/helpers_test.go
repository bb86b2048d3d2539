package httpx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/auth"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/services"
)

const testSecret = "test-secret"

func newTestLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

// fakeUsers is an in-memory UserProvider with canned results.
type fakeUsers struct {
	registerResult *services.AuthResult
	registerErr    error
	loginResult    *services.AuthResult
	loginErr       error
	profile        *models.UserProfile
	profileErr     error
}

func (f *fakeUsers) Register(_ context.Context, _, _, _, _ string) (*services.AuthResult, error) {
	return f.registerResult, f.registerErr
}

func (f *fakeUsers) Login(_ context.Context, _, _ string) (*services.AuthResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeUsers) GetMe(_ context.Context, _ int64) (*models.UserProfile, error) {
	return f.profile, f.profileErr
}

// fakeTasks is an in-memory TaskProvider scoped by owner.
type fakeTasks struct {
	store  map[int64]*models.Task
	nextID int64
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{store: make(map[int64]*models.Task)}
}

func (f *fakeTasks) owned(userID, taskID int64) (*models.Task, error) {
	task, ok := f.store[taskID]
	if !ok || task.UserID != userID {
		return nil, common.ErrNotFound
	}
	return task, nil
}

func (f *fakeTasks) List(_ context.Context, userID int64) ([]*models.Task, error) {
	result := []*models.Task{}
	for _, task := range f.store {
		if task.UserID == userID {
			result = append(result, task)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakeTasks) Create(_ context.Context, userID int64, title string, description *string) (*models.Task, error) {
	if title == "" {
		return nil, common.NewValidationError("Task title is required.")
	}
	f.nextID++
	task := &models.Task{
		ID:          f.nextID,
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}
	f.store[task.ID] = task
	return task, nil
}

func (f *fakeTasks) Get(_ context.Context, userID, taskID int64) (*models.Task, error) {
	return f.owned(userID, taskID)
}

func (f *fakeTasks) Update(_ context.Context, userID, taskID int64, upd services.TaskUpdate) (*models.Task, error) {
	task, err := f.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	if upd.Title != nil {
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		task.Description = upd.Description
	}
	return task, nil
}

func (f *fakeTasks) Delete(_ context.Context, userID, taskID int64) error {
	if _, err := f.owned(userID, taskID); err != nil {
		return err
	}
	delete(f.store, taskID)
	return nil
}

func (f *fakeTasks) ToggleComplete(_ context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := f.owned(userID, taskID)
	if err != nil {
		return nil, err
	}
	task.Completed = !task.Completed
	return task, nil
}

func newTestServerWith(users UserProvider, tasks TaskProvider) *Server {
	tokens := auth.NewTokenManager([]byte(testSecret), time.Hour)
	return NewServer(":0", newTestLogger(), users, tasks, tokens, nil)
}

func issueToken(t *testing.T, s *Server, userID int64, email string) string {
	t.Helper()
	token, err := s.tokens.Issue(userID, email)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doRequest(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}
