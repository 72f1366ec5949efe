package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/branchstock/branchstock-backend/pkg/db/models"
)

// UserDTO is the transport shape that omits the credential hash.
type UserDTO struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Branch    string     `json:"branch"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Name         string
	Branch       string
	PasswordHash string
	IsAdmin      bool
	CreatedBy    *uuid.UUID
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Branch:    u.Branch,
		IsAdmin:   u.IsAdmin,
		CreatedBy: u.CreatedBy,
		CreatedAt: u.CreatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         c.Name,
		Branch:       c.Branch,
		PasswordHash: c.PasswordHash,
		IsAdmin:      c.IsAdmin,
		CreatedBy:    c.CreatedBy,
	}
}
