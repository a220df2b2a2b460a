package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/judn/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Password cost for bcrypt
const bcryptCost = 12

// Login lockout policy
const (
	MaxLoginAttempts = 5
	LockoutDuration  = 2 * time.Hour
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// User is the aggregate root for admin panel accounts
type User struct {
	shared.AuditedAggregateRoot
	Name           string
	Email          string
	Phone          string
	PasswordHash   string
	Role           Role
	Active         bool
	LastLoginAt    *time.Time
	FailedAttempts int
	LockedUntil    *time.Time
}

// NewUser creates a new active user with a hashed password
func NewUser(name, email, password string, role Role) (*User, error) {
	if err := validateUserName(name); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Email:                strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:         passwordHash,
		Role:                 role,
		Active:               true,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// Update updates the user's profile fields
func (u *User) Update(name, phone string) error {
	if err := validateUserName(name); err != nil {
		return err
	}
	if phone != "" && len(phone) > 20 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 20 characters")
	}

	u.Name = strings.TrimSpace(name)
	u.Phone = strings.TrimSpace(phone)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Unknown role")
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword changes the password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword resets the password without checking the old one
func (u *User) SetPassword(newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLoginSuccess resets the failure counter and stamps the login time
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = now
	u.IncrementVersion()
}

// RecordLoginFailure counts a failed attempt. The fifth cumulative
// failure locks the account for two hours. Returns true when the
// account just locked.
func (u *User) RecordLoginFailure() bool {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	if u.FailedAttempts >= MaxLoginAttempts {
		lockedUntil := time.Now().Add(LockoutDuration)
		u.LockedUntil = &lockedUntil
		u.AddDomainEvent(NewUserLockedEvent(u))
		return true
	}

	return false
}

// Unlock clears the lockout and failure counter
func (u *User) Unlock() {
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Activate enables the account
func (u *User) Activate() {
	u.Active = true
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsLocked returns true while the lockout window is open
func (u *User) IsLocked() bool {
	return u.LockedUntil != nil && time.Now().Before(*u.LockedUntil)
}

// CanLogin returns true when the account is active and not locked
func (u *User) CanLogin() bool {
	return u.Active && !u.IsLocked()
}

// HasPermission reports whether the user's role grants the permission
func (u *User) HasPermission(p Permission) bool {
	return u.Role.HasPermission(p)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateUserName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if len(name) > 50 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum password policy
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
