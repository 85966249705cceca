package identity

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/retailops/backend/internal/domain/shared"
)

const bcryptCost = 12

// Role is the access level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// IsValid reports whether the role is a known value
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleStaff
}

// User is an account that can sign in to the system
type User struct {
	shared.BaseAggregateRoot
	Name          string `gorm:"size:200;not null" json:"name"`
	Email         string `gorm:"size:200;uniqueIndex;not null" json:"email"`
	PasswordHash  string `gorm:"size:255;not null" json:"-"`
	Role          Role   `gorm:"size:20;not null;default:'staff'" json:"role"`
	Active        bool   `gorm:"not null;default:true" json:"active"`
	EmailVerified bool   `gorm:"not null;default:false" json:"email_verified"`
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// NewUser creates an active user with a hashed password
func NewUser(name, email, password string, role Role) (*User, error) {
	if name == "" {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "name is required")
	}
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "a valid email is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError(shared.ErrCodeValidation, "password must be at least 8 characters")
	}
	if !role.IsValid() {
		return nil, shared.NewDomainErrorf(shared.ErrCodeValidation, "unknown role %q", role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, shared.NewDomainError("INTERNAL_ERROR", "failed to hash password")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		PasswordHash:      string(hash),
		Role:              role,
		Active:            true,
	}, nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError(shared.ErrCodeValidation, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return shared.NewDomainError("INTERNAL_ERROR", "failed to hash password")
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// ChangePassword verifies the old password before setting the new one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError(shared.ErrCodeInvalidCredentials, "current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// UpdateProfile changes name and role
func (u *User) UpdateProfile(name string, role Role) error {
	if name == "" {
		return shared.NewDomainError(shared.ErrCodeValidation, "name is required")
	}
	if !role.IsValid() {
		return shared.NewDomainErrorf(shared.ErrCodeValidation, "unknown role %q", role)
	}
	u.Name = name
	u.Role = role
	u.Touch()
	return nil
}

// VerifyEmail marks the email as verified
func (u *User) VerifyEmail() {
	u.EmailVerified = true
	u.Touch()
}

// Deactivate disables sign-in for the account
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
}

// Activate re-enables sign-in
func (u *User) Activate() {
	u.Active = true
	u.Touch()
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanLogin reports whether the account may sign in
func (u *User) CanLogin() bool {
	return u.Active
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
