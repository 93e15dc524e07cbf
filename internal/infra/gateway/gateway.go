// Package gateway wraps outbound backend calls with a freshly checked bearer credential,
// retrying once when the backend answers 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"
	"storefront/internal/session"
)

// DefaultRefreshMargin is the remaining lifetime below which the credential is renewed before a call.
const DefaultRefreshMargin = 5 * time.Minute

// CredentialSource supplies and renews the bearer credential of a request.
type CredentialSource interface {
	Token(ctx context.Context) (*entity.Credential, error)
	RefreshToken(ctx context.Context) error
	Now() time.Time
}

// Gateway sends authenticated requests on behalf of the session carried by the request context.
type Gateway struct {
	client        *http.Client
	refreshMargin time.Duration
	source        func(ctx context.Context) (CredentialSource, bool)
	logger        *slog.Logger
}

type callOptions struct {
	skipAuth bool
}

// Option tweaks a single call.
type Option func(*callOptions)

// SkipAuth sends the request without a credential.
func SkipAuth() Option {
	return func(o *callOptions) {
		o.skipAuth = true
	}
}

// New creates a gateway from configuration, reading the session from the request context.
func New(cfg *config.Config, logger *slog.Logger) *Gateway {
	margin := DefaultRefreshMargin
	timeout := 30 * time.Second
	if cfg.Gateway != nil {
		if cfg.Gateway.RefreshMargin > 0 {
			margin = cfg.Gateway.RefreshMargin
		}
		if cfg.Gateway.Timeout > 0 {
			timeout = cfg.Gateway.Timeout
		}
	}

	return NewWithSource(&http.Client{Timeout: timeout}, margin, sessionSource, logger)
}

// NewWithSource creates a gateway with an explicit credential lookup.
func NewWithSource(client *http.Client, refreshMargin time.Duration, source func(ctx context.Context) (CredentialSource, bool), logger *slog.Logger) *Gateway {
	if client == nil {
		client = http.DefaultClient
	}
	if refreshMargin <= 0 {
		refreshMargin = DefaultRefreshMargin
	}

	return &Gateway{
		client:        client,
		refreshMargin: refreshMargin,
		source:        source,
		logger:        logger,
	}
}

func sessionSource(ctx context.Context) (CredentialSource, bool) {
	m, ok := session.FromContext(ctx)
	if !ok || !m.IsAuthenticated() {
		return nil, false
	}

	return m, true
}

func (g *Gateway) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, g.logger)
}

// Do sends req. The body is buffered so the request can be replayed once after a 401;
// the second response is returned as is.
func (g *Gateway) Do(ctx context.Context, req *http.Request, opts ...Option) (*http.Response, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	body, err := bufferBody(req)
	if err != nil {
		return nil, err
	}
	if len(body) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if o.skipAuth {
		return g.send(ctx, req, body, "")
	}

	// 1. Resolve the session credential
	src, ok := g.source(ctx)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrUnauthenticated, "gateway request")
	}

	token, err := g.freshToken(ctx, src)
	if err != nil {
		return nil, err
	}

	// 2. First attempt
	resp, err := g.send(ctx, req, body, token)
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// 3. Refresh once and replay the identical request once
	drain(resp)
	g.log(ctx).Info("Backend rejected credential, refreshing and retrying",
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
	)

	if err := src.RefreshToken(ctx); err != nil {
		return nil, err //nolint:wrapcheck // session errors are already domain errors
	}
	credential, err := src.Token(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return g.send(ctx, req, body, credential.IDToken)
}

func (g *Gateway) freshToken(ctx context.Context, src CredentialSource) (string, error) {
	credential, err := src.Token(ctx)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	if credential.ExpiresWithin(src.Now(), g.refreshMargin) {
		g.log(ctx).Debug("Credential close to expiry, refreshing before call",
			slog.Time("expires_at", credential.ExpiresAt),
		)
		if err := src.RefreshToken(ctx); err != nil {
			return "", err //nolint:wrapcheck
		}
		if credential, err = src.Token(ctx); err != nil {
			return "", err //nolint:wrapcheck
		}
	}

	return credential.IDToken, nil
}

func (g *Gateway) send(ctx context.Context, req *http.Request, body []byte, token string) (*http.Response, error) {
	attempt := req.Clone(ctx)
	if body != nil {
		attempt.Body = io.NopCloser(bytes.NewReader(body))
		attempt.ContentLength = int64(len(body))
		attempt.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}
	if token != "" {
		attempt.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(attempt)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUpstreamFailure.WithDetails(err.Error()), "gateway request")
	}

	return resp, nil
}

// Get sends an authenticated GET.
func (g *Gateway) Get(ctx context.Context, url string, opts ...Option) (*http.Response, error) {
	return g.request(ctx, http.MethodGet, url, nil, opts...)
}

// Post sends payload as JSON.
func (g *Gateway) Post(ctx context.Context, url string, payload any, opts ...Option) (*http.Response, error) {
	return g.request(ctx, http.MethodPost, url, payload, opts...)
}

// Put sends payload as JSON.
func (g *Gateway) Put(ctx context.Context, url string, payload any, opts ...Option) (*http.Response, error) {
	return g.request(ctx, http.MethodPut, url, payload, opts...)
}

// Delete sends an authenticated DELETE.
func (g *Gateway) Delete(ctx context.Context, url string, opts ...Option) (*http.Response, error) {
	return g.request(ctx, http.MethodDelete, url, nil, opts...)
}

func (g *Gateway) request(ctx context.Context, method, url string, payload any, opts ...Option) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return g.Do(ctx, req, opts...)
}

func bufferBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer req.Body.Close()

	data, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read request body")
	}

	return data, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
