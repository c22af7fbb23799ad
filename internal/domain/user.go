package domain

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	RoleJobSeeker UserRole = "job_seeker"
	RoleAdmin     UserRole = "admin"
)

// ValidRole reports whether the role is a known value.
func ValidRole(r UserRole) bool {
	switch r {
	case RoleJobSeeker, RoleAdmin:
		return true
	}
	return false
}

// User is the domain model for account holders.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
