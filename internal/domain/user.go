package domain

import (
	"time"
)

// User represents a registered account in the system.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Token is the response payload for the login and refresh endpoints.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenTypeBearer is the token_type value issued for all access tokens.
const TokenTypeBearer = "Bearer"

// NewToken wraps a signed access token in the standard response shape.
func NewToken(accessToken string) Token {
	return Token{AccessToken: accessToken, TokenType: TokenTypeBearer}
}
