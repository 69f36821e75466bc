package domain

import "errors"

const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analista"
	RoleExpert  = "perito"
)

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")

// ValidRole reports whether role is one of the three known roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleAnalyst || role == RoleExpert
}

// Account models a user of the verification system. The credential is a hex
// sha256 of the password concatenated with Salt; hash and salt are stored in
// separate columns and compared byte-for-byte on login.
type Account struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Salt         string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Active       bool   `json:"active"`
}
