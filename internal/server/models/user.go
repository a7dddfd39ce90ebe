// Package models holds the domain records shared by repositories, services
// and the HTTP layer. JSON tags define the public API shape.
package models

import (
	"strings"
	"time"
)

// MaxRefreshTokens bounds how many refresh tokens a user may hold at once.
const MaxRefreshTokens = 5

// User is an account. PasswordHash and RefreshTokens never leave the server.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	RefreshTokens []string  `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// NormalizeEmail trims and lower-cases an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// TokenPair is what login, register and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	User   *User     `json:"user"`
	Tokens TokenPair `json:"tokens"`
}
