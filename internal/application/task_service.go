package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/agrosphere-api/internal/domain/entity"
	repo "github.com/oksasatya/agrosphere-api/internal/domain/repository"
)

// TaskNotifier signals the live connections of a room that its task set changed.
type TaskNotifier interface {
	Notify(room string) int
}

type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
}

// UpdateTaskInput carries the fields a client sent; nil means absent.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Category    *string
}

type TaskService struct {
	Repo     repo.TaskRepository
	Notifier TaskNotifier
	Logger   *logrus.Logger
	now      func() time.Time
}

func NewTaskService(r repo.TaskRepository, n TaskNotifier, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: r, Notifier: n, Logger: logger, now: time.Now}
}

func validTitle(s string) bool {
	return s != "" && utf8.RuneCountInString(s) <= entity.MaxTaskTitleLen
}

func validDescription(s string) bool {
	return utf8.RuneCountInString(s) <= entity.MaxTaskDescriptionLen
}

// Create validates and stores a task for owner, then notifies owner's room.
func (s *TaskService) Create(ctx context.Context, owner string, in CreateTaskInput) (*entity.TaskRecord, error) {
	if !validTitle(in.Title) {
		return nil, ErrInvalidTitle
	}
	if !validDescription(in.Description) {
		return nil, ErrInvalidDescription
	}
	category := in.Category
	if strings.TrimSpace(category) == "" {
		category = entity.DefaultTaskCategory
	}
	t := &entity.TaskRecord{
		UserID:      owner,
		Title:       in.Title,
		Description: in.Description,
		Category:    category,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	s.notify(owner)
	return t, nil
}

// List returns owner's tasks; caller must be the owner.
func (s *TaskService) List(ctx context.Context, caller, owner string) ([]entity.TaskRecord, error) {
	if caller == "" || caller != owner {
		return nil, ErrForbidden
	}
	tasks, err := s.Repo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []entity.TaskRecord{}
	}
	return tasks, nil
}

// Update applies the present, non-empty and valid fields of in. Invalid fields are
// dropped rather than rejected. It returns the field set that was applied.
func (s *TaskService) Update(ctx context.Context, id, owner string, in UpdateTaskInput) (entity.TaskChanges, error) {
	oid, ok := entity.ParseID(id)
	if !ok {
		return entity.TaskChanges{}, ErrInvalidID
	}
	changes := Sanitize(in)
	if err := s.Repo.Update(ctx, oid, owner, changes); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return entity.TaskChanges{}, ErrTaskNotFound
		}
		return entity.TaskChanges{}, fmt.Errorf("update task: %w", err)
	}
	s.notify(owner)
	return changes, nil
}

// Delete removes the task matching (id, owner).
func (s *TaskService) Delete(ctx context.Context, id, owner string) error {
	oid, ok := entity.ParseID(id)
	if !ok {
		return ErrInvalidID
	}
	if err := s.Repo.Delete(ctx, oid, owner); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	s.notify(owner)
	return nil
}

// Sanitize keeps only the fields of in that may be written.
func Sanitize(in UpdateTaskInput) entity.TaskChanges {
	var c entity.TaskChanges
	if in.Title != nil && validTitle(*in.Title) {
		c.Title = in.Title
	}
	if in.Description != nil && *in.Description != "" && validDescription(*in.Description) {
		c.Description = in.Description
	}
	if in.Category != nil && strings.TrimSpace(*in.Category) != "" {
		c.Category = in.Category
	}
	return c
}

func (s *TaskService) notify(owner string) {
	if s.Notifier == nil {
		return
	}
	n := s.Notifier.Notify(owner)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"room": owner, "delivered": n}).Debug("task change notified")
	}
}
