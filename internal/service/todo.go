package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	"github.com/sandrosmarzaro/todo-list-api/internal/repository"
	apperrors "github.com/sandrosmarzaro/todo-list-api/pkg/errors"
	"github.com/sandrosmarzaro/todo-list-api/pkg/pagination"
)

// TodoService implements the business logic for todo operations. Every
// operation is scoped to the authenticated principal.
type TodoService struct {
	todoRepo repository.TodoRepository
	producer EventPublisher
	logger   *slog.Logger
}

// NewTodoService creates a new todo service.
func NewTodoService(
	todoRepo repository.TodoRepository,
	producer EventPublisher,
	logger *slog.Logger,
) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		producer: producer,
		logger:   logger,
	}
}

// CreateTodoInput holds the parameters for creating a todo.
type CreateTodoInput struct {
	Title       string
	Description string
	State       domain.TodoState
}

// UpdateTodoInput holds the parameters for a partial todo update. Nil fields
// keep their current values.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	State       *domain.TodoState
}

// Create adds a new todo owned by the principal.
func (s *TodoService) Create(ctx context.Context, principal *domain.User, input CreateTodoInput) (*domain.Todo, error) {
	if input.State == "" {
		input.State = domain.TodoStateDraft
	}
	if !input.State.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid todo state: %q", input.State))
	}

	now := time.Now().UTC()
	todo := &domain.Todo{
		ID:          uuid.New().String(),
		UserID:      principal.ID,
		Title:       input.Title,
		Description: input.Description,
		State:       input.State,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}

	if err := s.producer.PublishTodoCreated(ctx, todo); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish todo.created event",
			slog.String("todo_id", todo.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "todo created",
		slog.String("todo_id", todo.ID),
		slog.String("user_id", principal.ID),
	)

	return todo, nil
}

// List returns the principal's todos matching the filter with a total count.
func (s *TodoService) List(ctx context.Context, principal *domain.User, filter domain.TodoFilter) (*pagination.Result[domain.Todo], error) {
	if filter.State != "" && !filter.State.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid todo state: %q", filter.State))
	}

	todos, err := s.todoRepo.List(ctx, principal.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	total, err := s.todoRepo.Count(ctx, principal.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("count todos: %w", err)
	}

	result := pagination.NewResult(todos, total, pagination.Params{Limit: filter.Limit, Offset: filter.Offset})
	return &result, nil
}

// Update applies a partial update to one of the principal's todos. A todo
// owned by someone else is indistinguishable from a missing one.
func (s *TodoService) Update(ctx context.Context, principal *domain.User, id string, input UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.todoRepo.GetForUser(ctx, id, principal.ID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("todo", id)
		}
		return nil, err
	}

	if input.Title != nil {
		todo.Title = *input.Title
	}
	if input.Description != nil {
		todo.Description = *input.Description
	}
	if input.State != nil {
		if !input.State.Valid() {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid todo state: %q", *input.State))
		}
		todo.State = *input.State
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}

	if todo.State == domain.TodoStateDone {
		if err := s.producer.PublishTodoCompleted(ctx, todo); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish todo.completed event",
				slog.String("todo_id", todo.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return todo, nil
}

// Delete removes one of the principal's todos.
func (s *TodoService) Delete(ctx context.Context, principal *domain.User, id string) error {
	if err := s.todoRepo.Delete(ctx, id, principal.ID); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "todo deleted",
		slog.String("todo_id", id),
		slog.String("user_id", principal.ID),
	)

	return nil
}
