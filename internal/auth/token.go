package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	svcErr "github.com/oggyb/match-service/internal/errors"
)

const issuer = "match-service"

// TokenIssuer signs and verifies HS256 access tokens. The user id is the subject.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for userID and its expiry.
func (t *TokenIssuer) Issue(userID string) (string, time.Time, error) {
	now := t.now()
	expiresAt := now.Add(t.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses the token and returns the user id it was issued for.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", svcErr.Unauthenticated("token expired")
		}
		return "", svcErr.Unauthenticated("invalid token")
	}
	if !token.Valid || claims.Subject == "" {
		return "", svcErr.Unauthenticated("invalid token")
	}
	return claims.Subject, nil
}
