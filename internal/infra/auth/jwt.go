package auth

import (
	"errors"
	"fmt"
	"time"

	"mindhaven/internal/infra/logger"

	"github.com/golang-jwt/jwt/v5"
)

// ErrAuthenticationFailed is returned for any credential that does not
// resolve to a user identity: bad signature, expired token, missing claim.
var ErrAuthenticationFailed = errors.New("authentication failed")

type TokenService struct {
	Secret []byte
	Logger *logger.Logger
}

func NewTokenService(secret string, logger *logger.Logger) *TokenService {
	return &TokenService{Secret: []byte(secret), Logger: logger}
}

// Verify resolves an opaque bearer token into a user id.
func (ts *TokenService) Verify(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return ts.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		ts.Logger.Warn(fmt.Sprintf("Token verification failed: %v", err))
		return "", fmt.Errorf("%w: %v", ErrAuthenticationFailed, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrAuthenticationFailed
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		ts.Logger.Warn("Token has no subject claim")
		return "", ErrAuthenticationFailed
	}

	return sub, nil
}

// Issue signs a short-lived token for the given user id.
func (ts *TokenService) Issue(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString(ts.Secret)
}
