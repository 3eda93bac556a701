package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/taskbloc/taskbloc-go/internal/model"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskRepository handles task persistence operations. Every query is scoped
// to an owner email; a task is never visible or writable across owners.
type TaskRepository struct {
	db *sql.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Insert stores a new task and sets the generated ID on the task struct.
func (r *TaskRepository) Insert(ctx context.Context, task *model.Task) error {
	query := `INSERT INTO tasks (usuario, texto, fecha, done) VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, task.OwnerEmail, task.Title, task.DueDate, task.Done)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	task.ID = id
	return nil
}

// Update rewrites title, due date and done flag of the task matching
// (id, owner). Ownership is enforced in the WHERE clause: an id belonging to
// another owner matches no rows and reports ErrTaskNotFound.
func (r *TaskRepository) Update(ctx context.Context, owner string, id int64, title, dueDate string, done bool) error {
	query := `UPDATE tasks SET texto = ?, fecha = ?, done = ? WHERE id = ? AND usuario = ?`

	result, err := r.db.ExecContext(ctx, query, title, dueDate, done, id, owner)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// ListByOwner retrieves all tasks for an owner, most recently created first.
func (r *TaskRepository) ListByOwner(ctx context.Context, owner string) ([]model.Task, error) {
	query := `SELECT id, usuario, texto, fecha, done FROM tasks WHERE usuario = ? ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.OwnerEmail, &t.Title, &t.DueDate, &t.Done); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}
