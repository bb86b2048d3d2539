package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	tasksrepo "github.com/dmitrijs2005/taskmanager/internal/server/repositories/tasks"
	usersrepo "github.com/dmitrijs2005/taskmanager/internal/server/repositories/users"
)

// --- shared helpers ---

func newTestLogger(t *testing.T) logging.Logger {
	t.Helper()
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- fake users repository ---

type fakeUsersRepo struct {
	nextID int64

	byEmail map[string]*models.User
	byID    map[int64]*models.User

	createErr error
	getErr    error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{
		nextID:  1,
		byEmail: map[string]*models.User{},
		byID:    map[int64]*models.User{},
	}
}

func (f *fakeUsersRepo) add(u *models.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return nil, common.ErrAlreadyExists
	}
	u.ID = f.nextID
	f.nextID++
	u.CreatedAt = time.Now()
	f.add(u)
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

// --- fake tasks repository ---

type fakeTasksRepo struct {
	nextID int64
	items  map[int64]*models.Task

	forcedErr error
}

func newFakeTasksRepo() *fakeTasksRepo {
	return &fakeTasksRepo{nextID: 1, items: map[int64]*models.Task{}}
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	if t.Description != nil {
		d := *t.Description
		c.Description = &d
	}
	return &c
}

func (f *fakeTasksRepo) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	task.ID = f.nextID
	f.nextID++
	task.CreatedAt = time.Now()
	f.items[task.ID] = copyTask(task)
	return task, nil
}

func (f *fakeTasksRepo) GetByID(ctx context.Context, id int64) (*models.Task, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	task, ok := f.items[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return copyTask(task), nil
}

func (f *fakeTasksRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	if f.forcedErr != nil {
		return nil, f.forcedErr
	}
	result := []*models.Task{}
	for _, task := range f.items {
		if task.UserID == userID {
			result = append(result, copyTask(task))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

func (f *fakeTasksRepo) Update(ctx context.Context, task *models.Task) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.items[task.ID]; !ok {
		return common.ErrNotFound
	}
	f.items[task.ID] = copyTask(task)
	return nil
}

func (f *fakeTasksRepo) Delete(ctx context.Context, id int64) error {
	if f.forcedErr != nil {
		return f.forcedErr
	}
	if _, ok := f.items[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	t *fakeTasksRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{u: newFakeUsersRepo(), t: newFakeTasksRepo()}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository              { return m.u }
func (m *fakeRepoManager) Tasks(db dbx.DBTX) tasksrepo.Repository              { return m.t }
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }
