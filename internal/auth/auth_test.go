package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lakshya2505/LogiCore/internal/models"
)

func testService() *Service {
	return NewService([]byte("test-secret"), time.Hour)
}

func TestHashAndCheckPassword(t *testing.T) {
	s := testService()

	hash, err := s.HashPassword("securepassword123")
	assert.NoError(t, err)
	assert.NotEqual(t, "securepassword123", hash)

	assert.True(t, s.CheckPassword("securepassword123", hash))
	assert.False(t, s.CheckPassword("wrongpassword", hash))
	assert.False(t, s.CheckPassword("securepassword123", "not-a-hash"))
}

func TestGenerateAndValidateToken(t *testing.T) {
	s := testService()
	user := &models.User{
		ID:       "user-1",
		Username: "prakash",
		Role:     models.RoleDispatcher,
	}

	token, err := s.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := s.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "prakash", claims.Username)
	assert.Equal(t, models.RoleDispatcher, claims.Role)

	// The Bearer prefix is stripped before parsing.
	claims, err = s.ValidateToken("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestValidateToken_Invalid(t *testing.T) {
	s := testService()

	_, err := s.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	// A token signed with another secret is rejected.
	other := NewService([]byte("other-secret"), time.Hour)
	token, err := other.GenerateToken(&models.User{ID: "u", Username: "x", Role: models.RoleManager})
	assert.NoError(t, err)
	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateToken_Expired(t *testing.T) {
	s := NewService([]byte("test-secret"), -time.Minute)
	token, err := s.GenerateToken(&models.User{ID: "u", Username: "x", Role: models.RoleManager})
	assert.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGenerateRefreshToken(t *testing.T) {
	s := testService()
	a, err := s.GenerateRefreshToken()
	assert.NoError(t, err)
	b, err := s.GenerateRefreshToken()
	assert.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestValidatePassword(t *testing.T) {
	s := testService()
	assert.NoError(t, s.ValidatePassword("longenough"))
	assert.Error(t, s.ValidatePassword("short"))
}

func TestValidateEmail(t *testing.T) {
	s := testService()
	assert.NoError(t, s.ValidateEmail("ops@logicore.in"))
	assert.Error(t, s.ValidateEmail("not-an-email"))
	assert.Error(t, s.ValidateEmail("missing@dot"))
}

func TestValidateUsername(t *testing.T) {
	s := testService()
	assert.NoError(t, s.ValidateUsername("dispatcher01"))
	assert.Error(t, s.ValidateUsername("ab"))
	assert.Error(t, s.ValidateUsername(string(make([]byte, 51))))
}
