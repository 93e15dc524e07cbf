// Package storage implements the object store used by the upload pipeline.
package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/gateway"
)

const defaultStorageEndpoint = "https://firebasestorage.googleapis.com"

// firebaseStore talks to the Firebase Storage REST API with the merchant's own credential,
// so bucket security rules apply exactly as they would to the merchant's browser.
type firebaseStore struct {
	gateway  *gateway.Gateway
	endpoint string
	bucket   string
}

// NewFirebaseStore creates an object store for bucket. An empty endpoint uses the public API.
func NewFirebaseStore(gw *gateway.Gateway, endpoint, bucket string) service.ObjectStore {
	if endpoint == "" {
		endpoint = defaultStorageEndpoint
	}

	return &firebaseStore{
		gateway:  gw,
		endpoint: strings.TrimRight(endpoint, "/"),
		bucket:   bucket,
	}
}

type uploadResponse struct {
	Name           string `json:"name"`
	DownloadTokens string `json:"downloadTokens"`
}

func (s *firebaseStore) objectsURL() string {
	return s.endpoint + "/v0/b/" + url.PathEscape(s.bucket) + "/o"
}

func (s *firebaseStore) objectURL(key string) string {
	return s.objectsURL() + "/" + url.PathEscape(key)
}

// Put uploads data and returns its tokenized download URL.
func (s *firebaseStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	query := url.Values{}
	query.Set("uploadType", "media")
	query.Set("name", key)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.objectsURL()+"?"+query.Encode(), bytes.NewReader(data))
	if err != nil {
		return "", errors.WithStack(err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := s.gateway.Do(ctx, req)
	if err != nil {
		return "", err //nolint:wrapcheck // gateway errors are domain errors
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", statusError("upload", resp)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", errors.Wrap(err, "decode upload response")
	}

	download := url.Values{}
	download.Set("alt", "media")
	if token, _, _ := strings.Cut(uploaded.DownloadTokens, ","); token != "" {
		download.Set("token", token)
	}

	return s.objectURL(key) + "?" + download.Encode(), nil
}

// Delete removes the object.
func (s *firebaseStore) Delete(ctx context.Context, key string) error {
	resp, err := s.gateway.Delete(ctx, s.objectURL(key))
	if err != nil {
		return err //nolint:wrapcheck
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("delete", resp)
	}

	return nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	return errors.Errorf("storage %s returned status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
}
