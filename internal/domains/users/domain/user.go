package domain

import (
	"errors"
	"strings"
)

// Role enumerates the access levels a user may hold.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

var (
	ErrEmptyName   = errors.New("name is required")
	ErrEmptyEmail  = errors.New("email is required")
	ErrInvalidRole = errors.New("role must be 'user' or 'admin'")
)

// User represents a registered platform user. Email uniqueness is
// deliberately not enforced anywhere.
type User struct {
	ID    int64
	Name  string
	Email string
	Role  Role
}

// NewUser builds a user ensuring required invariants. An empty role
// defaults to RoleUser.
func NewUser(name, email string, role Role) (*User, error) {
	user := &User{}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := user.ChangeEmail(email); err != nil {
		return nil, err
	}
	if err := user.ChangeRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// ChangeEmail trims and validates the email address.
func (u *User) ChangeEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmptyEmail
	}
	u.Email = email
	return nil
}

// ChangeRole sets the role, defaulting empty input to RoleUser.
func (u *User) ChangeRole(role Role) error {
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return ErrInvalidRole
	}
	u.Role = role
	return nil
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.Rename(u.Name); err != nil {
		return err
	}
	if err := u.ChangeEmail(u.Email); err != nil {
		return err
	}
	return u.ChangeRole(u.Role)
}
