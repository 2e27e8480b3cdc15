package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/camden-git/contactsbackend/database"
	"github.com/camden-git/contactsbackend/models"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// UserStore is the credential storage AuthService needs; *database.Store implements it.
type UserStore interface {
	GetUser(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error)
	CreateUser(ctx context.Context, username, passwordHash string) error
}

// AuthService checks and changes user passwords on top of a UserStore
type AuthService struct {
	users UserStore
	cost  int
	log   zerolog.Logger
}

// NewAuthService creates a new auth service. A cost <= 0 uses bcrypt.DefaultCost.
func NewAuthService(users UserStore, cost int, log zerolog.Logger) *AuthService {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		users: users,
		cost:  cost,
		log:   log.With().Str("component", "auth").Logger(),
	}
}

// Authenticate returns the user when password matches its stored hash.
// Unknown users and wrong passwords both return ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrUserNotFound) {
			s.log.Info().Str("username", username).Msg("login for unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user %s: %w", username, err)
	}

	if !user.CheckPassword(password) {
		s.log.Info().Str("username", username).Msg("login with wrong password")
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates a user with a freshly hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	user := models.User{Username: username}
	if err := user.SetPasswordWithCost(password, s.cost); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.users.CreateUser(ctx, user.Username, user.PasswordHash)
}

// ChangePassword hashes newPassword and stores it for username.
// It returns ErrInvalidCredentials if no such user exists.
func (s *AuthService) ChangePassword(ctx context.Context, username, newPassword string) error {
	user := models.User{Username: username}
	if err := user.SetPasswordWithCost(newPassword, s.cost); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	n, err := s.users.UpdatePassword(ctx, username, user.PasswordHash)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInvalidCredentials
	}
	s.log.Info().Str("username", username).Msg("password changed")
	return nil
}
