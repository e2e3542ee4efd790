package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/and161185/task-keeper/internal/model"
)

// TaskRepository provides owner-scoped CRUD over tasks. Every accessor takes
// the owner's user ID; a task owned by somebody else behaves exactly like a
// missing one (errs.ErrNotFound).
type TaskRepository interface {
	// Create inserts a new task for the owner.
	Create(ctx context.Context, t *model.Task) error
	// GetByID loads one task owned by userID.
	GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Task, error)
	// List returns the owner's tasks, newest first, narrowed by filter.
	List(ctx context.Context, userID uuid.UUID, f model.TaskFilter) ([]model.Task, error)
	// Update applies a partial patch to one task owned by userID and
	// returns the updated row.
	Update(ctx context.Context, userID, id uuid.UUID, p model.TaskPatch) (*model.Task, error)
	// Delete removes one task owned by userID.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
