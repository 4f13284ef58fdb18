package domain

import "time"

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User models an authenticated actor in the system. PasswordHash is never
// serialized and never logged.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}
