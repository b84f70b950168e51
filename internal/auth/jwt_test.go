package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("u1", "admin@raniriwaaj.com", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin@raniriwaaj.com", claims.Email)
	assert.Equal(t, RoleAdmin, claims.Role)
	assert.Equal(t, "u1", claims.Subject)
}

func TestValidateExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate("u1", "a@b.com", RoleAdmin)
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.Error(t, err)
}

func TestValidateWrongSecret(t *testing.T) {
	m := NewJWTManager("secret-a", time.Hour)
	token, err := m.Generate("u1", "a@b.com", RoleAdmin)
	require.NoError(t, err)

	other := NewJWTManager("secret-b", time.Hour)
	_, err = other.Validate(token)
	require.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	_, err := m.Validate("not-a-token")
	require.Error(t, err)
}

func TestMiddlewareValidator(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Generate("u1", "a@b.com", RoleAdmin)
	require.NoError(t, err)

	claims, err := m.MiddlewareValidator()(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, RoleAdmin, claims.Role)
}
