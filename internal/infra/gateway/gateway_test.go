package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeCredentials struct {
	mu         sync.Mutex
	credential entity.Credential
	next       []string
	refreshes  int
	refreshErr error
}

func (f *fakeCredentials) Token(context.Context) (*entity.Credential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := f.credential

	return &c, nil
}

func (f *fakeCredentials) RefreshToken(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.refreshes++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.credential = entity.Credential{IDToken: f.next[0], ExpiresAt: now.Add(time.Hour)}
	f.next = f.next[1:]

	return nil
}

func (f *fakeCredentials) Now() time.Time { return now }

func newTestGateway(src *fakeCredentials) *Gateway {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewWithSource(http.DefaultClient, 5*time.Minute, func(context.Context) (CredentialSource, bool) {
		if src == nil {
			return nil, false
		}

		return src, true
	}, logger)
}

func TestGateway_AttachesBearerAndJSONContentType(t *testing.T) {
	var gotAuth, gotType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	src := &fakeCredentials{credential: entity.Credential{IDToken: "tok-1", ExpiresAt: now.Add(time.Hour)}}
	gw := newTestGateway(src)

	resp, err := gw.Post(context.Background(), server.URL, map[string]string{"a": "b"})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.JSONEq(t, `{"a":"b"}`, gotBody)
	assert.Equal(t, 0, src.refreshes)
}

func TestGateway_KeepsExplicitContentType(t *testing.T) {
	var gotType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotType = r.Header.Get("Content-Type")
	}))
	defer server.Close()

	src := &fakeCredentials{credential: entity.Credential{IDToken: "tok-1", ExpiresAt: now.Add(time.Hour)}}
	gw := newTestGateway(src)

	req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader("raw"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "image/png")

	resp, err := gw.Do(context.Background(), req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "image/png", gotType)
}

func TestGateway_RefreshesBeforeCallWhenCloseToExpiry(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	src := &fakeCredentials{
		credential: entity.Credential{IDToken: "old", ExpiresAt: now.Add(4 * time.Minute)},
		next:       []string{"fresh"},
	}
	gw := newTestGateway(src)

	resp, err := gw.Get(context.Background(), server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 1, src.refreshes)
	assert.Equal(t, "Bearer fresh", gotAuth)
}

func TestGateway_RetriesOnceAfter401WithSameBody(t *testing.T) {
	var calls int
	var bodies, auths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		data, _ := io.ReadAll(r.Body)
		bodies = append(bodies, string(data))
		auths = append(auths, r.Header.Get("Authorization"))
		if calls == 1 {
			w.WriteHeader(http.StatusUnauthorized)

			return
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	src := &fakeCredentials{
		credential: entity.Credential{IDToken: "revoked", ExpiresAt: now.Add(time.Hour)},
		next:       []string{"renewed"},
	}
	gw := newTestGateway(src)

	resp, err := gw.Put(context.Background(), server.URL, map[string]int{"stock": 3})
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 2, calls)
	assert.Equal(t, bodies[0], bodies[1])
	assert.Equal(t, []string{"Bearer revoked", "Bearer renewed"}, auths)
	assert.Equal(t, 1, src.refreshes)
}

func TestGateway_SecondUnauthorizedIsReturnedVerbatim(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("denied"))
	}))
	defer server.Close()

	src := &fakeCredentials{
		credential: entity.Credential{IDToken: "a", ExpiresAt: now.Add(time.Hour)},
		next:       []string{"b", "c"},
	}
	gw := newTestGateway(src)

	resp, err := gw.Delete(context.Background(), server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "denied", string(body))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, src.refreshes)
}

func TestGateway_NoSession_FailsWithoutNetworkCall(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	gw := newTestGateway(nil)

	resp, err := gw.Get(context.Background(), server.URL)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
	assert.Zero(t, calls)
}

func TestGateway_SkipAuth(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	gw := newTestGateway(nil)

	resp, err := gw.Get(context.Background(), server.URL, SkipAuth())
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestGateway_RefreshFailureOn401Propagates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	src := &fakeCredentials{
		credential: entity.Credential{IDToken: "a", ExpiresAt: now.Add(time.Hour)},
		refreshErr: domainerrors.ErrSessionExpired,
	}
	gw := newTestGateway(src)

	_, err := gw.Get(context.Background(), server.URL)

	assert.ErrorIs(t, err, domainerrors.ErrSessionExpired)
}
