package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/societyhub/backend/internal/domain/shared"
)

// Role represents a user's role within a society
type Role string

const (
	RoleAdmin     Role = "ADMIN"     // Platform administrator, unrestricted
	RoleCommittee Role = "COMMITTEE" // Society committee member
	RoleTreasurer Role = "TREASURER" // Society treasurer
	RoleResident  Role = "RESIDENT"  // Regular resident, read-only
)

// IsValid checks if the role is a valid Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleCommittee, RoleTreasurer, RoleResident:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Password cost for bcrypt
const bcryptCost = 12

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// User represents a registered user. Non-admin users are scoped to their
// home society; that scope is the tenant boundary for every ledger check.
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	SocietyID    *uuid.UUID // nil for platform admins not attached to a society
	FlatID       *uuid.UUID
	LastLoginAt  *time.Time
}

// NewUser creates a new user with the given role
func NewUser(name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("Name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewValidationError("Name cannot exceed 100 characters")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("Role is not valid")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:      passwordHash,
		Role:              role,
	}, nil
}

// AttachToSociety scopes the user to a society, optionally to a flat
func (u *User) AttachToSociety(societyID uuid.UUID, flatID *uuid.UUID) {
	u.SocietyID = &societyID
	u.FlatID = flatID
	u.Touch()
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	if phone != "" && len(phone) > 20 {
		return shared.NewValidationError("Phone cannot exceed 20 characters")
	}
	u.Phone = strings.TrimSpace(phone)
	u.Touch()
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword updates the password hash after validating the new password
func (u *User) ChangePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// RecordLogin records a successful login
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// Actor returns the authorization view of the user
func (u *User) Actor() Actor {
	return Actor{
		ID:        u.ID,
		Role:      u.Role,
		SocietyID: u.SocietyID,
	}
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewValidationError("Email cannot be empty")
	}
	if len(email) > 255 {
		return shared.NewValidationError("Email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewValidationError("Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt input limit
		return shared.NewValidationError("Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
