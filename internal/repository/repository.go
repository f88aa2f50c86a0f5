package repository

import (
	"context"

	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user into the store.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List returns a page of users ordered by creation time.
	List(ctx context.Context, limit, offset int) ([]domain.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int, error)

	// Update modifies an existing user in the store.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their identifier.
	Delete(ctx context.Context, id string) error
}

// TodoRepository defines the interface for todo persistence operations.
// All lookups are scoped to the owning user.
type TodoRepository interface {
	// Create inserts a new todo into the store.
	Create(ctx context.Context, todo *domain.Todo) error

	// GetForUser retrieves a todo by ID if it belongs to the given user.
	GetForUser(ctx context.Context, id, userID string) (*domain.Todo, error)

	// List returns the user's todos matching the filter.
	List(ctx context.Context, userID string, filter domain.TodoFilter) ([]domain.Todo, error)

	// Count returns the number of the user's todos matching the filter,
	// ignoring its pagination fields.
	Count(ctx context.Context, userID string, filter domain.TodoFilter) (int, error)

	// Update modifies an existing todo in the store.
	Update(ctx context.Context, todo *domain.Todo) error

	// Delete removes a todo if it belongs to the given user.
	Delete(ctx context.Context, id, userID string) error
}
