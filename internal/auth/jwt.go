package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token decode failures. Callers can distinguish why a token was rejected,
// even though the HTTP layer collapses all of them into the same 401 response.
var (
	ErrTokenMalformed      = errors.New("token is malformed or has an invalid signature")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenMissingSubject = errors.New("token has no subject claim")
)

// Claims represents the JWT claims for an access token.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies HS256 access tokens.
type TokenCodec struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a token codec with the given signing secret and
// access token lifetime.
func NewTokenCodec(secret string, expiry time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// Issue creates a signed JWT whose subject identifies the account. The
// expiry is always stamped relative to the current time, so a token issued
// by the refresh endpoint gets a fresh lifetime.
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := c.now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.expiry)),
			Issuer:    "todo-api",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}

	return signedToken, nil
}

// Decode parses and verifies a token, returning its subject. Failures map to
// ErrTokenExpired, ErrTokenMissingSubject, or ErrTokenMalformed for any other
// parse or signature problem.
func (c *TokenCodec) Decode(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenMalformed
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrTokenMalformed
	}
	if claims.Subject == "" {
		return "", ErrTokenMissingSubject
	}

	return claims.Subject, nil
}
