package identity

import (
	"github.com/judn/backend/internal/domain/shared"
)

const (
	EventTypeUserCreated = "identity.user.created"
	EventTypeUserLocked  = "identity.user.locked"
)

// UserCreatedEvent is published when an account is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", u.ID),
		Email:           u.Email,
		Role:            u.Role,
	}
}

// UserLockedEvent is published when repeated login failures lock an account
type UserLockedEvent struct {
	shared.BaseDomainEvent
	Email          string `json:"email"`
	FailedAttempts int    `json:"failed_attempts"`
}

// NewUserLockedEvent creates a new UserLockedEvent
func NewUserLockedEvent(u *User) *UserLockedEvent {
	return &UserLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserLocked, "User", u.ID),
		Email:           u.Email,
		FailedAttempts:  u.FailedAttempts,
	}
}
