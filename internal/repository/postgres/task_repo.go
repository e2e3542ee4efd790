package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/and161185/task-keeper/internal/errs"
	"github.com/and161185/task-keeper/internal/model"
)

// TaskRepo implements TaskRepository using PostgreSQL. Every query carries
// the owner's user_id in the WHERE clause; a foreign task scans as no rows.
type TaskRepo struct{ db *DB }

// NewTaskRepo constructs a task repository.
func NewTaskRepo(db *DB) *TaskRepo { return &TaskRepo{db: db} }

const taskColumns = `id, user_id, title, description, due_date, completed, created_at, updated_at`

// Create inserts a new task row and reads back store-maintained timestamps.
func (r *TaskRepo) Create(ctx context.Context, t *model.Task) error {
	const q = `
INSERT INTO tasks (id, user_id, title, description, due_date, completed)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at, updated_at`
	return r.db.Pool.
		QueryRow(ctx, q, t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.Completed).
		Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID selects one task owned by userID.
func (r *TaskRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (*model.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks WHERE user_id=$1 AND id=$2`
	return scanTask(r.db.Pool.QueryRow(ctx, q, userID, id))
}

// List selects the owner's tasks, newest first.
func (r *TaskRepo) List(ctx context.Context, userID uuid.UUID, f model.TaskFilter) ([]model.Task, error) {
	const q = `
SELECT ` + taskColumns + `
FROM tasks
WHERE user_id=$1 AND ($2::boolean IS NULL OR completed=$2)
ORDER BY created_at DESC
OFFSET $3 LIMIT $4`
	rows, err := r.db.Pool.Query(ctx, q, userID, f.Completed, f.Skip, f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update applies a partial patch; untouched columns keep their values.
func (r *TaskRepo) Update(ctx context.Context, userID, id uuid.UUID, p model.TaskPatch) (*model.Task, error) {
	const q = `
UPDATE tasks SET
  title       = COALESCE($3, title),
  description = COALESCE($4, description),
  due_date    = COALESCE($5, due_date),
  completed   = COALESCE($6, completed),
  updated_at  = now()
WHERE user_id=$1 AND id=$2
RETURNING ` + taskColumns
	return scanTask(r.db.Pool.QueryRow(ctx, q, userID, id, p.Title, p.Description, p.DueDate, p.Completed))
}

// Delete removes one task owned by userID.
func (r *TaskRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM tasks WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var t model.Task
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, errs.ErrNotFound
	}
	return &t, nil
}
