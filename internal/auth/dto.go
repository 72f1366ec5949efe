package auth

import "github.com/branchstock/branchstock-backend/internal/users"

// RegisterRequest contains the payload required to open an account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=64"`
	Branch   string `json:"branch" validate:"required,min=1,max=64"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest carries the credentials presented at login.
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse returns the bearer token, the refresh token backing its
// session, and the account they identify.
type AuthResponse struct {
	Token        string         `json:"token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
