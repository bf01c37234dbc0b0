package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/expense-api/internal/domain"
	"github.com/phrazzld/expense-api/internal/platform/logger"
	"github.com/phrazzld/expense-api/internal/service/auth"
	"github.com/phrazzld/expense-api/internal/store"
)

// maxPasswordBytes is the longest password bcrypt accepts.
const maxPasswordBytes = 72

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User        *domain.User
	AccessToken string
}

// AuthService provides account registration, login and profile lookup.
type AuthService interface {
	// Register creates an account and returns it with a fresh access token.
	// username and email are normalized first. Returns a validation error when
	// any field is empty and ErrEmailTaken when the email is registered.
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)

	// Login verifies the credentials and returns a fresh access token.
	// Returns ErrInvalidCredentials for an unknown email or a wrong password.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// GetProfile returns the public profile of userID.
	// Returns store.ErrUserNotFound when userID is malformed or unknown.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
}

type authServiceImpl struct {
	users  store.UserStore
	hasher auth.PasswordHasher
	tokens auth.TokenService
	logger *slog.Logger
}

var _ AuthService = (*authServiceImpl)(nil)

// NewAuthService creates a new AuthService.
// It returns an error if any of the required dependencies are nil.
func NewAuthService(
	users store.UserStore,
	hasher auth.PasswordHasher,
	tokens auth.TokenService,
	logger *slog.Logger,
) (AuthService, error) {
	if users == nil {
		return nil, fmt.Errorf("user store cannot be nil")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher cannot be nil")
	}
	if tokens == nil {
		return nil, fmt.Errorf("token service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &authServiceImpl{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With(slog.String("component", "auth_service")),
	}, nil
}

// Register implements AuthService.Register.
func (s *authServiceImpl) Register(
	ctx context.Context,
	username, email, password string,
) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	username = domain.Normalize(username)
	email = domain.Normalize(email)
	if username == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("", "username, email and password are required", nil)
	}
	if len(password) > maxPasswordBytes {
		return nil, domain.NewValidationError("password", "must be at most 72 bytes", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		log.Debug("registration rejected: email already registered")
		return nil, ErrEmailTaken
	} else if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(username, email, hashed)
	if err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Another registration for the same email won the race.
		if errors.Is(err, store.ErrEmailExists) {
			return nil, fmt.Errorf("%w: %w", ErrEmailTaken, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))
	return &AuthResult{User: user, AccessToken: token}, nil
}

// Login implements AuthService.Login.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	email = domain.Normalize(email)
	if email == "" || password == "" {
		return nil, domain.NewValidationError("", "email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("login rejected: unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(user.HashedPassword, password) {
		log.Debug("login rejected: password mismatch", slog.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, user.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	log.Debug("user logged in", slog.String("user_id", user.ID.String()))
	return &AuthResult{User: user, AccessToken: token}, nil
}

// GetProfile implements AuthService.GetProfile.
func (s *authServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	return user.Profile(), nil
}
