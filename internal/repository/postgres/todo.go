package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	"github.com/sandrosmarzaro/todo-list-api/pkg/database"
	apperrors "github.com/sandrosmarzaro/todo-list-api/pkg/errors"
)

// TodoRepository implements repository.TodoRepository using PostgreSQL.
type TodoRepository struct {
	db database.DBTX
}

// NewTodoRepository creates a new PostgreSQL-backed todo repository.
func NewTodoRepository(db database.DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

// Create inserts a new todo into the database.
func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	query := `
		INSERT INTO todos (id, user_id, title, description, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.State,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}

	return nil
}

// GetForUser retrieves a todo by ID if it belongs to the given user.
func (r *TodoRepository) GetForUser(ctx context.Context, id, userID string) (*domain.Todo, error) {
	query := `
		SELECT id, user_id, title, description, state, created_at, updated_at
		FROM todos
		WHERE id = $1 AND user_id = $2`

	var t domain.Todo
	err := r.db.QueryRow(ctx, query, id, userID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.State,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}

	return &t, nil
}

// List returns the user's todos matching the filter, newest first.
func (r *TodoRepository) List(ctx context.Context, userID string, filter domain.TodoFilter) ([]domain.Todo, error) {
	where, args := buildTodoFilter(userID, filter)

	query := fmt.Sprintf(`
		SELECT id, user_id, title, description, state, created_at, updated_at
		FROM todos
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.State,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan todo row: %w", err)
		}
		todos = append(todos, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todo rows: %w", err)
	}

	if todos == nil {
		todos = []domain.Todo{}
	}

	return todos, nil
}

// Count returns the number of the user's todos matching the filter.
func (r *TodoRepository) Count(ctx context.Context, userID string, filter domain.TodoFilter) (int, error) {
	where, args := buildTodoFilter(userID, filter)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM todos %s`, where)

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return count, nil
}

// Update modifies an existing todo in the database. The row must belong to
// the todo's user.
func (r *TodoRepository) Update(ctx context.Context, t *domain.Todo) error {
	t.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE todos
		SET title = $1, description = $2, state = $3, updated_at = $4
		WHERE id = $5 AND user_id = $6`

	ct, err := r.db.Exec(ctx, query,
		t.Title,
		t.Description,
		t.State,
		t.UpdatedAt,
		t.ID,
		t.UserID,
	)
	if err != nil {
		return fmt.Errorf("update todo: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("todo", t.ID)
	}

	return nil
}

// Delete removes a todo if it belongs to the given user.
func (r *TodoRepository) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	ct, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("todo", id)
	}

	return nil
}

// buildTodoFilter assembles the WHERE clause and arguments shared by List
// and Count. Title and description match as case-insensitive substrings.
func buildTodoFilter(userID string, filter domain.TodoFilter) (string, []any) {
	where := "WHERE user_id = $1"
	args := []any{userID}

	if filter.Title != "" {
		args = append(args, "%"+filter.Title+"%")
		where += fmt.Sprintf(" AND title ILIKE $%d", len(args))
	}
	if filter.Description != "" {
		args = append(args, "%"+filter.Description+"%")
		where += fmt.Sprintf(" AND description ILIKE $%d", len(args))
	}
	if filter.State != "" {
		args = append(args, filter.State)
		where += fmt.Sprintf(" AND state = $%d", len(args))
	}

	return where, args
}
