// Package services contains the business logic between the HTTP
// handlers and the storage layer.
package services

import (
	"context"
	"errors"

	"github.com/pistonary/pistonary/internal/lib/jwt"
	"github.com/pistonary/pistonary/internal/lib/password"
	"github.com/pistonary/pistonary/internal/models"
)

// UserRepository describes the user storage operations the auth service
// needs.
type UserRepository interface {
	// RegisterUser stores a new user and returns the generated UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByUsername returns a user by login name.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles registration and login.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register creates a new user with a bcrypt-hashed password and the
// default "user" role.
func (s *AuthService) Register(ctx context.Context, email, username, rawPassword string) (string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", err
	}
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         "user",
	}
	return s.users.RegisterUser(ctx, user)
}

// Login checks the user's password and issues a JWT.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", errors.New("invalid credentials")
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}
