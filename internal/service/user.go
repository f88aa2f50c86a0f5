package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sandrosmarzaro/todo-list-api/internal/auth"
	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	"github.com/sandrosmarzaro/todo-list-api/internal/repository"
	apperrors "github.com/sandrosmarzaro/todo-list-api/pkg/errors"
	"github.com/sandrosmarzaro/todo-list-api/pkg/pagination"
)

// minPasswordLength is the minimum password length required.
const minPasswordLength = 8

// permissionDeniedMessage is returned when a principal targets another
// user's account.
const permissionDeniedMessage = "not enough permissions"

// EventPublisher is the subset of the event producer the services need.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishUserUpdated(ctx context.Context, user *domain.User) error
	PublishUserDeleted(ctx context.Context, user *domain.User) error
	PublishTodoCreated(ctx context.Context, todo *domain.Todo) error
	PublishTodoCompleted(ctx context.Context, todo *domain.Todo) error
}

// UserService implements the business logic for account operations.
type UserService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	producer EventPublisher
	logger   *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	producer EventPublisher,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		hasher:   hasher,
		producer: producer,
		logger:   logger,
	}
}

// RegisterInput holds the parameters for registering a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// UpdateUserInput holds the parameters for updating an account. All three
// fields are replaced.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a new account with a hashed password. Username and email
// collisions surface as conflict errors naming the colliding field.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns a page of accounts with the total count.
func (s *UserService) List(ctx context.Context, params pagination.Params) (*pagination.Result[domain.User], error) {
	users, err := s.userRepo.List(ctx, params.Limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	total, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	result := pagination.NewResult(users, total, params)
	return &result, nil
}

// Get returns the account with the given ID if the principal owns it.
func (s *UserService) Get(ctx context.Context, principal *domain.User, id string) (*domain.User, error) {
	if principal.ID != id {
		return nil, apperrors.Forbidden(permissionDeniedMessage)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Update replaces the principal's username, email, and password. Because all
// unique fields change at once, a collision cannot be attributed to a single
// field and is reported with a combined detail.
func (s *UserService) Update(ctx context.Context, principal *domain.User, id string, input UpdateUserInput) (*domain.User, error) {
	if principal.ID != id {
		return nil, apperrors.Forbidden(permissionDeniedMessage)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           id,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    principal.CreatedAt,
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if err := s.producer.PublishUserUpdated(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.updated event",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user updated",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// Delete removes the principal's own account.
func (s *UserService) Delete(ctx context.Context, principal *domain.User, id string) error {
	if principal.ID != id {
		return apperrors.Forbidden(permissionDeniedMessage)
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.producer.PublishUserDeleted(ctx, principal); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.deleted event",
			slog.String("user_id", id),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.String("user_id", id),
	)

	return nil
}

// validatePassword enforces the minimum password length.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters long", minPasswordLength))
	}
	return nil
}
