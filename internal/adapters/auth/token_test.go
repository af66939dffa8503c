package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTCodec_Issue(t *testing.T) {
	secret := "test-secret"
	codec := NewJWTCodec(secret)

	token, err := codec.Issue("user-123", "u@example.com", []string{"admin", "performer"}, 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.Equal(t, []string{"admin", "performer"}, claims.Roles)
}

func TestJWTCodec_Verify_roundtrip(t *testing.T) {
	codec := NewJWTCodec("test-secret")

	token, err := codec.Issue("user-456", "p@example.com", []string{"performer"}, time.Hour)
	require.NoError(t, err)

	userID, roles, err := codec.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-456", userID)
	assert.Equal(t, []string{"performer"}, roles)
}

func TestJWTCodec_Verify_wrong_secret(t *testing.T) {
	codec := NewJWTCodec("test-secret")
	token, err := codec.Issue("user-789", "x@example.com", nil, time.Hour)
	require.NoError(t, err)

	other := NewJWTCodec("other-secret")
	_, _, err = other.Verify(token)
	assert.Error(t, err)
}

func TestJWTCodec_Verify_expired(t *testing.T) {
	codec := NewJWTCodec("test-secret")
	token, err := codec.Issue("user-789", "x@example.com", nil, -time.Minute)
	require.NoError(t, err)

	_, _, err = codec.Verify(token)
	assert.Error(t, err)
}
