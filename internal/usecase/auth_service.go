package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mealwise/backend/internal/auth"
	"github.com/mealwise/backend/internal/domain"
	"github.com/mealwise/backend/pkg/crypto"
	"github.com/mealwise/backend/pkg/logger"
)

// RegisterInput captures the details required to register a new account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthService implements account registration and credential login.
type AuthService struct {
	users  domain.UserRepository
	tokens *auth.JWTService
	log    *zap.Logger
}

// NewAuthService creates an auth service with its dependencies.
func NewAuthService(users domain.UserRepository, tokens *auth.JWTService) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		log:    logger.WithModule("auth"),
	}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))
	return user, nil
}

// Login verifies the email/password pair and issues an access token. A
// missing user and a wrong password both surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil || !crypto.VerifyPassword(user.Password, password) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token, nil
}
