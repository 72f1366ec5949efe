package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID  uuid.UUID
	Branch  string
	IsAdmin bool
	JTI     string
}

// AccessTokenClaims represents the typed JWT issued to clients. Branch and
// IsAdmin are carried for logging only; authorization always re-reads them
// from the user record resolved during verification.
type AccessTokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	Branch  string    `json:"branch,omitempty"`
	IsAdmin bool      `json:"is_admin,omitempty"`
	jwt.RegisteredClaims
}
