package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTAuthorizer validates HS256 bearer tokens minted by IssueToken.
type JWTAuthorizer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTAuthorizer(secret string, ttl time.Duration) *JWTAuthorizer {
	return &JWTAuthorizer{secret: []byte(secret), ttl: ttl}
}

// IssueToken signs a token whose subject is the user ID.
func (a *JWTAuthorizer) IssueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Authorize verifies the signature and expiry and returns the caller identity.
func (a *JWTAuthorizer) Authorize(ctx context.Context, token string) (*UserInfo, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &UserInfo{UserID: claims.Subject}, nil
}
