// Package identitytoolkit signs merchants in against Firebase Authentication with
// email and password and keeps their ID tokens fresh through the Secure Token API.
package identitytoolkit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"
	"storefront/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

const defaultSecureTokenEndpoint = "https://securetoken.googleapis.com/v1/token"

// TokenRevoker revokes every refresh token of a user. *auth.Client satisfies it.
type TokenRevoker interface {
	RevokeRefreshTokens(ctx context.Context, uid string) error
}

// Params configures a Provider.
type Params struct {
	APIKey                  string
	IdentityToolkitEndpoint string // Empty uses the public endpoint
	SecureTokenEndpoint     string // Empty uses the public endpoint
	HTTPClient              *http.Client
	Revoker                 TokenRevoker // Optional
	Clock                   clockwork.Clock
	Logger                  *slog.Logger
}

// Provider implements service.AuthProvider.
type Provider struct {
	relyingParty *identitytoolkit.RelyingpartyService
	apiKey       string
	tokenURL     string
	httpClient   *http.Client
	revoker      TokenRevoker
	clock        clockwork.Clock
	logger       *slog.Logger
}

// New creates a Provider.
func New(ctx context.Context, params Params) (*Provider, error) {
	if params.APIKey == "" {
		return nil, errors.New("identity toolkit: api key is required")
	}
	if params.HTTPClient == nil {
		params.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}
	if params.Clock == nil {
		params.Clock = clockwork.NewRealClock()
	}
	if params.SecureTokenEndpoint == "" {
		params.SecureTokenEndpoint = defaultSecureTokenEndpoint
	}

	opts := []option.ClientOption{option.WithAPIKey(params.APIKey)}
	if params.IdentityToolkitEndpoint != "" {
		opts = append(opts, option.WithEndpoint(params.IdentityToolkitEndpoint))
	}

	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "identity toolkit: create service")
	}

	return &Provider{
		relyingParty: svc.Relyingparty,
		apiKey:       params.APIKey,
		tokenURL:     params.SecureTokenEndpoint,
		httpClient:   params.HTTPClient,
		revoker:      params.Revoker,
		clock:        params.Clock,
		logger:       params.Logger,
	}, nil
}

// NewFromConfig builds the provider from the firebase config section.
func NewFromConfig(ctx context.Context, cfg *config.Config, revoker TokenRevoker, logger *slog.Logger) (service.AuthProvider, error) {
	return New(ctx, Params{
		APIKey:                  cfg.Firebase.APIKey,
		IdentityToolkitEndpoint: cfg.Firebase.IdentityToolkitEndpoint,
		SecureTokenEndpoint:     cfg.Firebase.SecureTokenEndpoint,
		Revoker:                 revoker,
		Logger:                  logger,
	})
}

// SignIn verifies the email/password pair.
func (p *Provider) SignIn(ctx context.Context, email, password string) (*service.SignInResult, error) {
	resp, err := p.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, classifySignInError(err)
	}

	p.logger.Debug("Identity toolkit sign-in succeeded", slog.String("user_id", resp.LocalId))

	return &service.SignInResult{
		UserID:      resp.LocalId,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		Credential: entity.Credential{
			IDToken:      resp.IdToken,
			RefreshToken: resp.RefreshToken,
			ExpiresAt:    p.expiry(resp.IdToken, resp.ExpiresIn),
		},
	}, nil
}

type secureTokenResponse struct {
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    string `json:"expires_in"`
	UserID       string `json:"user_id"`
}

type apiErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Refresh exchanges a refresh token for a new ID token.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*entity.Credential, error) {
	if refreshToken == "" {
		return nil, errors.Wrap(service.ErrRefreshRejected, "missing refresh token")
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	endpoint := p.tokenURL + "?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "secure token request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read secure token response")
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorBody
		_ = json.Unmarshal(body, &apiErr)
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, errors.Wrapf(service.ErrRefreshRejected, "secure token: %s", apiErr.Error.Message)
		}

		return nil, errors.Errorf("secure token returned status %d: %s", resp.StatusCode, apiErr.Error.Message)
	}

	var token secureTokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, errors.Wrap(err, "decode secure token response")
	}

	expiresIn, _ := strconv.ParseInt(token.ExpiresIn, 10, 64)
	credential := &entity.Credential{
		IDToken:      token.IDToken,
		RefreshToken: token.RefreshToken,
		ExpiresAt:    p.expiry(token.IDToken, expiresIn),
	}
	if credential.RefreshToken == "" {
		credential.RefreshToken = refreshToken
	}

	return credential, nil
}

// RevokeSessions revokes the user's refresh tokens when a revoker is configured.
func (p *Provider) RevokeSessions(ctx context.Context, userID string) error {
	if p.revoker == nil || userID == "" {
		return nil
	}

	if err := p.revoker.RevokeRefreshTokens(ctx, userID); err != nil {
		return errors.Wrap(err, "revoke refresh tokens")
	}

	return nil
}

// expiry prefers the exp claim of the ID token and falls back to expiresIn seconds from now.
func (p *Provider) expiry(idToken string, expiresIn int64) time.Time {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}

	return p.clock.Now().Add(time.Duration(expiresIn) * time.Second)
}

func classifySignInError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return errors.Wrap(err, "verify password")
	}

	// Messages may carry a suffix, e.g. "TOO_MANY_ATTEMPTS_TRY_LATER : Access disabled..."
	code, _, _ := strings.Cut(apiErr.Message, " ")
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "INVALID_EMAIL", "USER_DISABLED":
		return errors.Wrap(service.ErrSignInRejected, code)
	case "TOO_MANY_ATTEMPTS_TRY_LATER":
		return errors.Wrap(service.ErrTooManyAttempts, code)
	default:
		return errors.Wrap(err, "verify password")
	}
}
