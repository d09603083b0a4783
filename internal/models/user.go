package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is an admin user's role.
type Role string

const (
	RoleAdmin Role = "admin"
)

// AdminUser is an administrative account. The primary account is seeded at
// startup and only ever deactivated, never hard-deleted.
type AdminUser struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Active       bool       `json:"active"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
