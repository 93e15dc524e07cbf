package storage

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredentials struct{}

func (staticCredentials) Token(context.Context) (*entity.Credential, error) {
	return &entity.Credential{IDToken: "user-token", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (staticCredentials) RefreshToken(context.Context) error { return nil }

func (staticCredentials) Now() time.Time { return time.Now() }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGateway() *gateway.Gateway {
	return gateway.NewWithSource(http.DefaultClient, time.Minute, func(context.Context) (gateway.CredentialSource, bool) {
		return staticCredentials{}, true
	}, testLogger())
}

func TestFirebaseStore_Put(t *testing.T) {
	var (
		gotPath, gotName, gotType, gotAuth string
		gotBody                            []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotName = r.URL.Query().Get("name")
		gotType = r.Header.Get("Content-Type")
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"name":"products/owner-1/1_a.png","downloadTokens":"tok-1,tok-2"}`))
	}))
	defer server.Close()

	store := NewFirebaseStore(testGateway(), server.URL, "demo.appspot.com")

	url, err := store.Put(context.Background(), "products/owner-1/1_a.png", "image/png", []byte("png"))
	require.NoError(t, err)

	assert.Equal(t, "/v0/b/demo.appspot.com/o", gotPath)
	assert.Equal(t, "products/owner-1/1_a.png", gotName)
	assert.Equal(t, "image/png", gotType)
	assert.Equal(t, "Bearer user-token", gotAuth)
	assert.Equal(t, []byte("png"), gotBody)
	assert.Equal(t, server.URL+"/v0/b/demo.appspot.com/o/products%2Fowner-1%2F1_a.png?alt=media&token=tok-1", url)
}

func TestFirebaseStore_PutRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403}}`))
	}))
	defer server.Close()

	store := NewFirebaseStore(testGateway(), server.URL, "bucket")

	_, err := store.Put(context.Background(), "k", "image/png", []byte("x"))
	assert.ErrorContains(t, err, "403")
}

func TestFirebaseStore_Delete(t *testing.T) {
	var gotMethod, gotURI string
	status := http.StatusNoContent
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotURI = r.RequestURI
		w.WriteHeader(status)
	}))
	defer server.Close()

	store := NewFirebaseStore(testGateway(), server.URL, "bucket")

	require.NoError(t, store.Delete(context.Background(), "store/owner-1/1_logo.png"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/v0/b/bucket/o/store%2Fowner-1%2F1_logo.png", gotURI)

	status = http.StatusNotFound
	assert.Error(t, store.Delete(context.Background(), "store/owner-1/1_logo.png"))
}

func TestBlobStore_PutAndDelete(t *testing.T) {
	ctx := context.Background()
	store, err := OpenBlobStore(ctx, "mem://", "https://cdn.example.com/%s", testLogger())
	require.NoError(t, err)
	defer store.Close()

	url, err := store.Put(ctx, "products/owner-1/1_a.png", "image/png", []byte("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/products/owner-1/1_a.png", url)

	ok, err := store.Exists(ctx, "products/owner-1/1_a.png")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Delete(ctx, "products/owner-1/1_a.png"))

	ok, err = store.Exists(ctx, "products/owner-1/1_a.png")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, store.Delete(ctx, "products/owner-1/1_a.png"))
}

func TestOpenBlobStore_RequiresPublicURLFormat(t *testing.T) {
	_, err := OpenBlobStore(context.Background(), "mem://", "", testLogger())
	assert.Error(t, err)
}
