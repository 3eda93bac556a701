package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/taskbloc/taskbloc-go/internal/model"
	"github.com/taskbloc/taskbloc-go/internal/repository"
	"github.com/taskbloc/taskbloc-go/internal/validate"
)

var (
	ErrOwnerRequired   = errors.New("owner email is required")
	ErrTitleRequired   = errors.New("title is required")
	ErrDueDateRequired = errors.New("due date is required")
	ErrTaskNotFound    = errors.New("task not found")
)

// TaskService implements add/update/list over owner-scoped tasks.
type TaskService struct {
	repo *repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(repo *repository.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Add stores a new task for the owner and returns it with its assigned ID.
func (s *TaskService) Add(ctx context.Context, owner, title, dueDate string, done bool) (model.Task, error) {
	owner = validate.NormalizeEmail(owner)
	title = strings.TrimSpace(title)
	dueDate = strings.TrimSpace(dueDate)

	switch {
	case owner == "":
		return model.Task{}, ErrOwnerRequired
	case title == "":
		return model.Task{}, ErrTitleRequired
	case dueDate == "":
		return model.Task{}, ErrDueDateRequired
	}

	task := model.Task{
		OwnerEmail: owner,
		Title:      title,
		DueDate:    dueDate,
		Done:       done,
	}

	if err := s.repo.Insert(ctx, &task); err != nil {
		slog.Error("insert task failed", "error", err)
		return model.Task{}, ErrUnexpected
	}

	return task, nil
}

// Update rewrites the task matching (id, owner). A missing or foreign task
// reports ErrTaskNotFound; the due date may be cleared.
func (s *TaskService) Update(ctx context.Context, owner string, id int64, title, dueDate string, done bool) error {
	owner = validate.NormalizeEmail(owner)
	title = strings.TrimSpace(title)
	dueDate = strings.TrimSpace(dueDate)

	switch {
	case owner == "":
		return ErrOwnerRequired
	case id <= 0:
		return ErrTaskNotFound
	case title == "":
		return ErrTitleRequired
	}

	if err := s.repo.Update(ctx, owner, id, title, dueDate, done); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return ErrTaskNotFound
		}
		slog.Error("update task failed", "error", err)
		return ErrUnexpected
	}

	return nil
}

// List returns the owner's tasks, most recently created first. Read-only.
func (s *TaskService) List(ctx context.Context, owner string) ([]model.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, validate.NormalizeEmail(owner))
	if err != nil {
		slog.Error("list tasks failed", "error", err)
		return nil, ErrUnexpected
	}
	return tasks, nil
}
