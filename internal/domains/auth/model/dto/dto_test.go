package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"kost/infras/jwt"
	"kost/internal/domains/auth/model/dto"
	"kost/shared/constant"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    3600,
	}

	var response dto.TokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(3600), response.ExpiresIn)
}

func TestRegisterRequest_ToUserModel(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	fullName := "Budi Santoso"
	phone := "+628123456789"

	req := dto.RegisterRequest{
		Email:    "  Budi@Example.COM ",
		Password: "plain-password",
		FullName: &fullName,
		Phone:    &phone,
	}

	user := req.ToUserModel("hashed", now)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.Equal(t, "hashed", user.Password)
	assert.Equal(t, constant.RoleUser, user.Level)
	assert.Equal(t, &fullName, user.FullName)
	assert.Equal(t, &phone, user.Phone)
	assert.True(t, user.Active)
	assert.False(t, user.IsVerified)
	assert.Equal(t, constant.ContextGuest, user.CreatedBy)
	assert.Equal(t, now, user.CreatedAt)
	assert.Equal(t, now, user.ModifiedAt)
}

func TestRegisterRequest_ToUserModel_UniqueIDs(t *testing.T) {
	req := dto.RegisterRequest{Email: "a@example.com", Password: "password123"}
	now := time.Now()

	assert.NotEqual(t, req.ToUserModel("h", now).ID, req.ToUserModel("h", now).ID)
}
