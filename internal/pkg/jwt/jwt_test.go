package jwt

import (
	"testing"
	"time"

	"github.com/avopro-hr/hr-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken_CarriesCallerClaims(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	account := user.Account{ID: "0190a1b2-7c3d-7e4f-8a9b-0c1d2e3f4a5b", Email: "jane@avopro.com", Name: "Jane", Role: user.RoleHR}

	token, expiresAt, err := svc.GenerateAccessToken(account)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	parsed, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	claims, err := parsed.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, account.ID, claims["user_id"])
	assert.Equal(t, "HR", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
	assert.NotEmpty(t, parsed.JwtID())
}

func TestGenerateAccessToken_UniquePerSession(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	account := user.Account{ID: "acc-1", Role: user.RoleEmployee}

	first, _, err := svc.GenerateAccessToken(account)
	require.NoError(t, err)
	second, _, err := svc.GenerateAccessToken(account)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstParsed, err := jwtauth.VerifyToken(svc.JWTAuth(), first)
	require.NoError(t, err)
	secondParsed, err := jwtauth.VerifyToken(svc.JWTAuth(), second)
	require.NoError(t, err)

	svc.RevokeToken(firstParsed.JwtID(), firstParsed.Expiration())
	assert.True(t, svc.IsTokenRevoked(firstParsed.JwtID()))
	assert.False(t, svc.IsTokenRevoked(secondParsed.JwtID()))
}

func TestStreamToken_RoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)

	token, expiresIn, err := svc.GenerateStreamToken("acc-1")
	require.NoError(t, err)
	assert.Equal(t, 300, expiresIn)

	id, err := svc.ValidateStreamToken(token)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", id)
}

func TestValidateStreamToken_RejectsAccessTokens(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	access, _, err := svc.GenerateAccessToken(user.Account{ID: "acc-1", Role: user.RoleEmployee})
	require.NoError(t, err)

	_, err = svc.ValidateStreamToken(access)
	assert.Error(t, err)

	other := NewJWTService("another-secret", time.Hour)
	foreign, _, err := other.GenerateStreamToken("acc-1")
	require.NoError(t, err)
	_, err = svc.ValidateStreamToken(foreign)
	assert.Error(t, err)
}

func TestRevokeAndPurge(t *testing.T) {
	svc := NewJWTService(testSecret, time.Hour)
	now := time.Now()

	svc.RevokeToken("expired", now.Add(-time.Minute))
	svc.RevokeToken("live", now.Add(time.Hour))
	assert.True(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))

	assert.Equal(t, 1, svc.PurgeRevoked(now))
	assert.False(t, svc.IsTokenRevoked("expired"))
	assert.True(t, svc.IsTokenRevoked("live"))
}
