// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"storefront/config"
	"storefront/internal/domain/constants"
	"storefront/internal/domain/service"
)

const issuer = "storefront"

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret []byte // Secret key for signing session tokens.
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Session == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret: []byte(cfg.SecretKey.Session),
		now:    time.Now,
	}, nil
}

// GenerateSessionToken signs a token naming the server-side session.
func (s *jwtService) GenerateSessionToken(sessionID, userID string, roles []string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := service.Claims{
		SessionID: sessionID,
		UserID:    userID,
		Roles:     roles,
		Type:      constants.SessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign session token")
	}

	return signed, nil
}

// ValidateToken checks signature, expiry and token type.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}

	if claims.Type != constants.SessionTokenType {
		return nil, errors.Errorf("unexpected token type: %q", claims.Type)
	}
	if claims.SessionID == "" {
		return nil, errors.New("token carries no session")
	}

	return claims, nil
}
