package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

type Role string

const (
	RoleClient Role = "client"
	RoleReader Role = "reader"
	RoleAdmin  Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleClient, RoleReader, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanBurn reports whether the role is ever allowed to burn a card.
// Clients never are, regardless of session ownership.
func (r Role) CanBurn() bool {
	return r == RoleReader || r == RoleAdmin
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
