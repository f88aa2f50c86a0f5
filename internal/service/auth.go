package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sandrosmarzaro/todo-list-api/internal/auth"
	"github.com/sandrosmarzaro/todo-list-api/internal/domain"
	"github.com/sandrosmarzaro/todo-list-api/internal/repository"
	apperrors "github.com/sandrosmarzaro/todo-list-api/pkg/errors"
)

// credentialsMessage is the generic detail returned whenever a bearer token
// is rejected. Token failure causes stay internal.
const credentialsMessage = "could not validate credentials"

// AuthService implements login, token refresh, and bearer token resolution.
type AuthService struct {
	userRepo repository.UserRepository
	hasher   *auth.PasswordHasher
	codec    *auth.TokenCodec
	logger   *slog.Logger

	// dummyHash is verified against when login hits an unknown email, so the
	// request costs a hash computation either way.
	dummyHash string
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	codec *auth.TokenCodec,
	logger *slog.Logger,
) (*AuthService, error) {
	dummyHash, err := hasher.Hash(context.Background(), "timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}

	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		codec:     codec,
		logger:    logger,
		dummyHash: dummyHash,
	}, nil
}

// Login authenticates with email and password and issues an access token.
// Unknown email and wrong password return distinct 401 details.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Token, error) {
	if email == "" {
		return domain.Token{}, apperrors.InvalidInput("username is required")
	}
	if password == "" {
		return domain.Token{}, apperrors.InvalidInput("password is required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Burn a verification anyway so the miss is not observably faster.
			_, _ = s.hasher.Verify(ctx, password, s.dummyHash)
			return domain.Token{}, apperrors.Unauthorized("unknown email")
		}
		return domain.Token{}, fmt.Errorf("get user by email: %w", err)
	}

	ok, err := s.hasher.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return domain.Token{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.Token{}, apperrors.Unauthorized("incorrect password")
	}

	signed, err := s.codec.Issue(user.Email)
	if err != nil {
		return domain.Token{}, fmt.Errorf("issue access token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("user_id", user.ID),
	)

	return domain.NewToken(signed), nil
}

// Refresh exchanges a still-valid access token for a fresh one with a full
// lifetime. The old token is not invalidated. Any decode failure or a subject
// that no longer resolves yields a generic 401.
func (s *AuthService) Refresh(ctx context.Context, tokenString string) (domain.Token, error) {
	subject, err := s.codec.Decode(tokenString)
	if err != nil {
		s.logger.DebugContext(ctx, "refresh rejected",
			slog.String("reason", err.Error()),
		)
		return domain.Token{}, apperrors.Unauthorized(credentialsMessage)
	}

	user, err := s.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Token{}, apperrors.Unauthorized(credentialsMessage)
		}
		return domain.Token{}, fmt.Errorf("get user for refresh: %w", err)
	}

	signed, err := s.codec.Issue(user.Email)
	if err != nil {
		return domain.Token{}, fmt.Errorf("issue access token: %w", err)
	}

	return domain.NewToken(signed), nil
}

// Resolve maps a bearer token to the account it identifies. Decode failures
// yield a generic 401; a well-formed token whose subject no longer exists
// yields a 404, since the caller proved who they are but the account is gone.
func (s *AuthService) Resolve(ctx context.Context, tokenString string) (*domain.User, error) {
	subject, err := s.codec.Decode(tokenString)
	if err != nil {
		s.logger.DebugContext(ctx, "token rejected",
			slog.String("reason", err.Error()),
		)
		return nil, apperrors.Unauthorized(credentialsMessage)
	}

	user, err := s.userRepo.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound("user", subject)
		}
		return nil, fmt.Errorf("get user by token subject: %w", err)
	}

	return user, nil
}
