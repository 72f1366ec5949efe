package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents one account. Name is the login identifier and is
// case-sensitive; CreatedBy is nil only for the self-registered bootstrap
// account.
type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string     `gorm:"type:text;not null;uniqueIndex"`
	Branch       string     `gorm:"type:text;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	IsAdmin      bool       `gorm:"column:is_admin;not null;default:false"`
	CreatedBy    *uuid.UUID `gorm:"type:uuid;column:created_by"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
