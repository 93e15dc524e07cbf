package identitytoolkit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeRevoker struct {
	revoked []string
}

func (f *fakeRevoker) RevokeRefreshTokens(_ context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)

	return nil
}

func idToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "uid-1",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("unused"))
	require.NoError(t, err)

	return token
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"code": status, "message": message},
	})
}

func newTestProvider(t *testing.T, handler http.Handler, revoker TokenRevoker) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := New(context.Background(), Params{
		APIKey:                  "api-key",
		IdentityToolkitEndpoint: server.URL + "/",
		SecureTokenEndpoint:     server.URL + "/token",
		HTTPClient:              server.Client(),
		Revoker:                 revoker,
		Clock:                   clockwork.NewFakeClockAt(now),
		Logger:                  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	return p
}

func TestProvider_SignIn(t *testing.T) {
	exp := now.Add(time.Hour)
	token := idToken(t, exp)

	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/verifyPassword", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "maria@loja.com", req["email"])
		assert.Equal(t, true, req["returnSecureToken"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"localId":      "uid-1",
			"email":        "maria@loja.com",
			"displayName":  "Maria",
			"idToken":      token,
			"refreshToken": "refresh-1",
			"expiresIn":    "3600",
		})
	}), nil)

	result, err := p.SignIn(context.Background(), "maria@loja.com", "secret")
	require.NoError(t, err)

	assert.Equal(t, "uid-1", result.UserID)
	assert.Equal(t, "Maria", result.DisplayName)
	assert.Equal(t, token, result.Credential.IDToken)
	assert.Equal(t, "refresh-1", result.Credential.RefreshToken)
	assert.True(t, exp.Equal(result.Credential.ExpiresAt))
}

func TestProvider_SignInErrors(t *testing.T) {
	tests := []struct {
		message string
		want    error
	}{
		{message: "INVALID_PASSWORD", want: service.ErrSignInRejected},
		{message: "EMAIL_NOT_FOUND", want: service.ErrSignInRejected},
		{message: "INVALID_LOGIN_CREDENTIALS", want: service.ErrSignInRejected},
		{message: "TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled", want: service.ErrTooManyAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				writeAPIError(w, http.StatusBadRequest, tt.message)
			}), nil)

			_, err := p.SignIn(context.Background(), "a@b.c", "x")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestProvider_SignInUpstreamFailure(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusServiceUnavailable, "BACKEND_ERROR")
	}), nil)

	_, err := p.SignIn(context.Background(), "a@b.c", "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrSignInRejected)
	assert.NotErrorIs(t, err, service.ErrTooManyAttempts)
}

func TestProvider_Refresh(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "api-key", r.URL.Query().Get("key"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "refresh-1", r.PostForm.Get("refresh_token"))

		// Opaque token: expiry comes from expires_in
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id_token":      "opaque",
			"refresh_token": "refresh-2",
			"expires_in":    "3600",
			"user_id":       "uid-1",
		})
	}), nil)

	credential, err := p.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)

	assert.Equal(t, "opaque", credential.IDToken)
	assert.Equal(t, "refresh-2", credential.RefreshToken)
	assert.Equal(t, now.Add(time.Hour), credential.ExpiresAt)
}

func TestProvider_RefreshRejected(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusBadRequest, "TOKEN_EXPIRED")
	}), nil)

	_, err := p.Refresh(context.Background(), "refresh-1")
	assert.ErrorIs(t, err, service.ErrRefreshRejected)

	_, err = p.Refresh(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrRefreshRejected)
}

func TestProvider_RefreshServerError(t *testing.T) {
	p := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusInternalServerError, "INTERNAL")
	}), nil)

	_, err := p.Refresh(context.Background(), "refresh-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrRefreshRejected)
}

func TestProvider_RevokeSessions(t *testing.T) {
	revoker := &fakeRevoker{}
	p := newTestProvider(t, http.NotFoundHandler(), revoker)

	require.NoError(t, p.RevokeSessions(context.Background(), "uid-1"))
	assert.Equal(t, []string{"uid-1"}, revoker.revoked)

	withoutRevoker := newTestProvider(t, http.NotFoundHandler(), nil)
	assert.NoError(t, withoutRevoker.RevokeSessions(context.Background(), "uid-1"))
}
