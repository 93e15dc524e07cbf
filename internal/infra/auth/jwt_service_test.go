package auth

import (
	"testing"
	"time"

	"storefront/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Session = secret

	return cfg
}

func TestJWTService_GenerateAndValidateSessionToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("test_session_secret_key_very_long_for_testing"))
	require.NoError(t, err)

	token, err := jwtService.GenerateSessionToken("sid-1", "uid-1", []string{"admin"}, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "uid-1", claims.UserID)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, []string{"admin"}, claims.Roles)
	assert.Equal(t, "session", claims.Type)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(testConfig("secret"))
	require.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "failed to parse token")
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuerService, err := NewJWTService(testConfig("secret-a"))
	require.NoError(t, err)
	verifier, err := NewJWTService(testConfig("secret-b"))
	require.NoError(t, err)

	token, err := issuerService.GenerateSessionToken("sid", "uid", nil, time.Hour)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(testConfig("secret"))
	require.NoError(t, err)

	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	impl := svc.(*jwtService)
	impl.now = func() time.Time { return issued }

	token, err := svc.GenerateSessionToken("sid", "uid", nil, time.Minute)
	require.NoError(t, err)

	impl.now = func() time.Time { return issued.Add(2 * time.Minute) }

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTService_UnknownTokenType(t *testing.T) {
	secret := "secret"
	svc, err := NewJWTService(testConfig(secret))
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":  "sid",
		"type": "refresh",
		"iss":  issuer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "unexpected token type")
}

func TestJWTService_EmptySecret(t *testing.T) {
	jwtService, err := NewJWTService(testConfig(""))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}
