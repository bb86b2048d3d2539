package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/taskmanager/internal/common"
	"github.com/dmitrijs2005/taskmanager/internal/logging"
	"github.com/dmitrijs2005/taskmanager/internal/server/models"
	"github.com/dmitrijs2005/taskmanager/internal/server/repositories/repomanager"
)

// TaskUpdate carries the optional fields of a partial task update. A nil
// field leaves the stored value unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
}

// TaskService provides owner-scoped task operations. Every read and
// mutation of a single task goes through authorize, so a task that does
// not exist and a task owned by someone else are indistinguishable to the
// caller.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	policy      TaskPolicy
	logger      logging.Logger
}

// NewTaskService constructs a TaskService with the given validation policy.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, policy TaskPolicy, l logging.Logger) *TaskService {
	return &TaskService{
		db:          db,
		repomanager: m,
		policy:      policy,
		logger:      l.With("module", "task_service"),
	}
}

// authorize is the single place the ownership comparison lives. A foreign
// owner yields common.ErrNotFound, never a forbidden-style error, so task
// existence is not revealed to non-owners.
func authorize(userID int64, task *models.Task) error {
	if task.UserID != userID {
		return common.ErrNotFound
	}
	return nil
}

// getOwned loads a task and authorizes it for userID.
func (s *TaskService) getOwned(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	task, err := repo.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "task lookup failed", "error", err.Error())
		return nil, common.ErrInternal
	}
	if err := authorize(userID, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns all tasks owned by userID, newest first. The store query
// itself is scoped by owner; other users' rows are never fetched.
func (s *TaskService) List(ctx context.Context, userID int64) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	tasks, err := repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error(ctx, "task list failed", "error", err.Error())
		return nil, common.ErrInternal
	}
	return tasks, nil
}

// Create validates the fields against the policy and stores a new task
// owned by userID.
func (s *TaskService) Create(ctx context.Context, userID int64, title string, description *string) (*models.Task, error) {
	if err := s.policy.ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := s.policy.ValidateDescription(description); err != nil {
		return nil, err
	}

	repo := s.repomanager.Tasks(s.db)
	task := &models.Task{UserID: userID, Title: title, Description: description}
	created, err := repo.Create(ctx, task)
	if err != nil {
		s.logger.Error(ctx, "task create failed", "error", err.Error())
		return nil, common.ErrInternal
	}
	return created, nil
}

// Get returns a single task after the ownership check.
func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	return s.getOwned(ctx, userID, taskID)
}

// Update applies a partial update to an owned task. Provided fields are
// validated; nil fields keep their stored values.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, upd TaskUpdate) (*models.Task, error) {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if err := s.policy.ValidateTitle(*upd.Title); err != nil {
			return nil, err
		}
		task.Title = *upd.Title
	}
	if upd.Description != nil {
		if err := s.policy.ValidateDescription(upd.Description); err != nil {
			return nil, err
		}
		task.Description = upd.Description
	}

	repo := s.repomanager.Tasks(s.db)
	if err := repo.Update(ctx, task); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "task update failed", "error", err.Error())
		return nil, common.ErrInternal
	}
	return task, nil
}

// Delete removes an owned task.
func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return err
	}

	repo := s.repomanager.Tasks(s.db)
	if err := repo.Delete(ctx, task.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrNotFound
		}
		s.logger.Error(ctx, "task delete failed", "error", err.Error())
		return common.ErrInternal
	}
	return nil
}

// ToggleComplete flips the completed flag of an owned task. Concurrent
// toggles of the same task are last-write-wins; the store's per-row
// update semantics serialize the writes and no application lock is added.
func (s *TaskService) ToggleComplete(ctx context.Context, userID, taskID int64) (*models.Task, error) {
	task, err := s.getOwned(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed

	repo := s.repomanager.Tasks(s.db)
	if err := repo.Update(ctx, task); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		s.logger.Error(ctx, "task toggle failed", "error", err.Error())
		return nil, common.ErrInternal
	}
	return task, nil
}
