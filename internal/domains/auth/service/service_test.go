package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"kost/config"
	"kost/infras/jwt"
	jwtMocks "kost/infras/jwt/mocks"
	"kost/infras/otel/mocks"
	"kost/internal/domains/auth/model/dto"
	"kost/internal/domains/auth/service"
	userMocks "kost/internal/domains/user/mocks"
	userModel "kost/internal/domains/user/model"
	"kost/shared/constant"
	"kost/shared/failure"
	gModel "kost/shared/model"
	"kost/shared/password"
	"kost/shared/timezone"
)

// bcrypt of "password"
const passwordHash = "$2a$10$92IXUNpkjO0rOQ5byMi.Ye4oKoEa3Ro9llC/.og/at2.uheWG/igi"

func stringPtr(s string) *string {
	return &s
}

func validUser() userModel.User {
	return userModel.User{
		ID:         "user-id-123",
		Email:      "test@example.com",
		Password:   passwordHash,
		Level:      constant.RoleUser,
		FullName:   stringPtr("Test User"),
		IsVerified: true,
		Active:     true,
		Metadata:   gModel.NewMetadata(constant.ActorSystem, timezone.Now()),
	}
}

func newService(t *testing.T) (service.Auth, *userMocks.MockUser, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockJWT := jwtMocks.NewMockJWT(ctrl)

	return service.New(mockUserRepo, &config.Config{}, mocks.NewOtel(), mockJWT), mockUserRepo, mockJWT
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.RegisterRequest
		setup    func(repo *userMocks.MockUser)
		wantCode int
	}{
		{
			name: "registers a tenant with a lowercased email",
			req:  dto.RegisterRequest{Email: "New@Example.com", Password: "password123"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByEmail(gomock.Any(), "New@Example.com").Return(userModel.User{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
					assert.Equal(t, "new@example.com", user.Email)
					assert.Equal(t, constant.RoleUser, user.Level)
					assert.True(t, user.Active)
					assert.NoError(t, password.Verify("password123", user.Password))

					return nil
				})
			},
		},
		{
			name: "email already registered",
			req:  dto.RegisterRequest{Email: "test@example.com", Password: "password123"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(validUser(), nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "lookup error",
			req:  dto.RegisterRequest{Email: "test@example.com", Password: "password123"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "insert error",
			req:  dto.RegisterRequest{Email: "test@example.com", Password: "password123"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setup(repo)

			err := svc.Register(context.Background(), tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	tokenPair := &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 3600}

	tests := []struct {
		name     string
		req      dto.LoginRequest
		setup    func(repo *userMocks.MockUser, jwtMock *jwtMocks.MockJWT)
		wantCode int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, jwtMock *jwtMocks.MockJWT) {
				user := validUser()
				repo.EXPECT().GetByEmail(gomock.Any(), "test@example.com").Return(user, nil)
				jwtMock.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Level).Return(tokenPair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "last login update failure does not fail the login",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, jwtMock *jwtMocks.MockJWT) {
				user := validUser()
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
				jwtMock.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Level).Return(tokenPair, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("update failed"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "wrongpassword"},
			setup: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "inactive user",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, _ *jwtMocks.MockJWT) {
				user := validUser()
				user.Active = false
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "token generation error",
			req:  dto.LoginRequest{Email: "test@example.com", Password: "password"},
			setup: func(repo *userMocks.MockUser, jwtMock *jwtMocks.MockJWT) {
				repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				jwtMock.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("signing failed"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, jwtMock := newService(t)
			tt.setup(repo, jwtMock)

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode == 0 {
				require.NoError(t, err)
				assert.Equal(t, "access-token", res.AccessToken)
				assert.Equal(t, "refresh-token", res.RefreshToken)
				assert.Equal(t, int64(3600), res.ExpiresIn)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("returns the new pair", func(t *testing.T) {
		svc, _, jwtMock := newService(t)

		jwtMock.EXPECT().RefreshTokens("refresh-token").Return(&jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

		res, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

		require.NoError(t, err)
		assert.Equal(t, "new-access", res.AccessToken)
		assert.Equal(t, "new-refresh", res.RefreshToken)
	})

	t.Run("invalid refresh token is unauthorized", func(t *testing.T) {
		svc, _, jwtMock := newService(t)

		jwtMock.EXPECT().RefreshTokens(gomock.Any()).Return(nil, jwt.ErrExpiredToken)

		_, err := svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "expired"})

		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	authed := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-id-123")

	tests := []struct {
		name     string
		ctx      context.Context
		req      dto.ChangePasswordRequest
		setup    func(repo *userMocks.MockUser)
		wantCode int
	}{
		{
			name: "changes the password",
			ctx:  authed,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					hashed, ok := fields[userModel.FieldPassword].(string)
					require.True(t, ok)
					assert.NoError(t, password.Verify("new-password", hashed))

					return nil
				})
			},
		},
		{
			name:     "no user in context",
			ctx:      context.Background(),
			req:      dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setup:    func(_ *userMocks.MockUser) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "user not found",
			ctx:  authed,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password", NewPassword: "new-password"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "wrong current password",
			ctx:  authed,
			req:  dto.ChangePasswordRequest{CurrentPassword: "not-it", NewPassword: "new-password"},
			setup: func(repo *userMocks.MockUser) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(validUser(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			tt.setup(repo)

			err := svc.ChangePassword(tt.ctx, tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAuthService_Login_UpgradesWeakHash(t *testing.T) {
	svc, repo, jwtMock := newService(t)

	weak, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := validUser()
	user.Password = string(weak)

	repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(user, nil)
	jwtMock.EXPECT().GenerateTokenPair(user.ID, user.Email, user.Level).Return(&jwt.TokenPair{AccessToken: "access-token"}, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
		hashed, ok := fields[userModel.FieldPassword].(string)
		require.True(t, ok)
		assert.False(t, password.NeedsRehash(hashed))
		assert.NoError(t, password.Verify("password", hashed))

		return nil
	})

	_, err = svc.Login(context.Background(), dto.LoginRequest{Email: user.Email, Password: "password"})

	require.NoError(t, err)
}
