package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/task-keeper/internal/model"
	"github.com/and161185/task-keeper/internal/repository"
)

// List paging bounds.
const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// TaskService defines owner-scoped task operations.
type TaskService interface {
	// Create stores a new task for the owner; id and timestamps are assigned.
	Create(ctx context.Context, userID uuid.UUID, t model.Task) (*model.Task, error)
	// Get loads one task owned by userID.
	Get(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)
	// List returns the owner's tasks, newest first.
	List(ctx context.Context, userID uuid.UUID, f model.TaskFilter) ([]model.Task, error)
	// Update applies a partial patch to one owned task.
	Update(ctx context.Context, userID, id uuid.UUID, p model.TaskPatch) (*model.Task, error)
	// Delete removes one owned task.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type TaskServiceImpl struct {
	tasks repository.TaskRepository
}

// NewTaskService constructs TaskService.
func NewTaskService(tasks repository.TaskRepository) *TaskServiceImpl {
	return &TaskServiceImpl{tasks: tasks}
}

// Create stores a new task owned by userID. Only title, description, due date
// and completed flag are taken from t.
func (s *TaskServiceImpl) Create(ctx context.Context, userID uuid.UUID, t model.Task) (*model.Task, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.UserID = userID
	if err := s.tasks.Create(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get loads one task owned by userID.
func (s *TaskServiceImpl) Get(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	return s.tasks.GetByID(ctx, userID, id)
}

// List returns the owner's tasks with the limit clamped to [1, 100].
func (s *TaskServiceImpl) List(ctx context.Context, userID uuid.UUID, f model.TaskFilter) ([]model.Task, error) {
	if f.Skip < 0 {
		f.Skip = 0
	}
	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.tasks.List(ctx, userID, f)
}

// Update applies a partial patch to one owned task.
func (s *TaskServiceImpl) Update(ctx context.Context, userID, id uuid.UUID, p model.TaskPatch) (*model.Task, error) {
	return s.tasks.Update(ctx, userID, id, p)
}

// Delete removes one owned task.
func (s *TaskServiceImpl) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.tasks.Delete(ctx, userID, id)
}
