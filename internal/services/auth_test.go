package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pistonary/pistonary/internal/lib/jwt"
	"github.com/pistonary/pistonary/internal/lib/password"
	"github.com/pistonary/pistonary/internal/models"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "hans" && u.Email == "hans@example.com" && u.Role == "user" &&
			password.CompareHash(u.PasswordHash, "secret123") == nil
	})).Return("uid-1", nil).Once()

	svc := NewAuthService(repo, jwt.NewJWTMaker("testkey", time.Hour))

	uid, err := svc.Register(context.Background(), "hans@example.com", "hans", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	repo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("secret123")
	require.NoError(t, err)

	user := &models.User{
		UUID:         "uid-1",
		Username:     "hans",
		PasswordHash: hash,
		Role:         "user",
	}

	tests := []struct {
		name      string
		setupMock func(r *UserRepoMock)
		password  string
		wantErr   bool
	}{
		{
			name: "success",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "hans").Return(user, nil).Once()
			},
			password: "secret123",
		},
		{
			name: "wrong password",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "hans").Return(user, nil).Once()
			},
			password: "wrong",
			wantErr:  true,
		},
		{
			name: "unknown user",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "hans").Return(nil, errors.New("no rows")).Once()
			},
			password: "secret123",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMock(repo)

			maker := jwt.NewJWTMaker("testkey", time.Hour)
			svc := NewAuthService(repo, maker)

			token, role, err := svc.Login(context.Background(), "hans", tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "user", role)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "hans", claims.Username)
		})
	}
}
