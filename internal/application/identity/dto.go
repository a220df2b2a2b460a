package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/judn/backend/internal/domain/identity"
)

// LoginRequest is the credential payload for staff login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest starts a password reset
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest completes a password reset with an issued token
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// LoginResponse carries tokens plus the authenticated user's profile
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresAt    time.Time    `json:"expires_at"`
	User         UserResponse `json:"user"`
}

// CreateUserRequest creates a staff account
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=20"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Role     string `json:"role" binding:"required,oneof=admin marketing_team order_manager product_manager"`
}

// UpdateUserRequest partially updates a staff account
type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Phone  *string `json:"phone,omitempty" binding:"omitempty,max=20"`
	Role   *string `json:"role,omitempty" binding:"omitempty,oneof=admin marketing_team order_manager product_manager"`
	Active *bool   `json:"active,omitempty"`
}

// ChangePasswordRequest changes the caller's own password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ListUsersFilter narrows user listing
type ListUsersFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Role     string `form:"role"`
	Active   *bool  `form:"active"`
	Search   string `form:"search"`
}

// UserResponse is the API representation of a staff account
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Role        string     `json:"role"`
	Permissions []string   `json:"permissions"`
	Active      bool       `json:"active"`
	Locked      bool       `json:"locked"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ActivityResponse is one audit trail entry
type ActivityResponse struct {
	ID        uuid.UUID `json:"id"`
	ActorID   uuid.UUID `json:"actor_id"`
	ActorRole string    `json:"actor_role"`
	Action    string    `json:"action"`
	Resource  string    `json:"resource"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ToUserResponse converts a domain user to its API representation
func ToUserResponse(u *identity.User) UserResponse {
	perms := u.Role.Permissions()
	permStrings := make([]string, 0, len(perms))
	for _, p := range perms {
		permStrings = append(permStrings, string(p))
	}

	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        string(u.Role),
		Permissions: permStrings,
		Active:      u.Active,
		Locked:      u.IsLocked(),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain users
func ToUserResponses(users []*identity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(u))
	}
	return responses
}

// ToActivityResponses converts audit entries
func ToActivityResponses(activities []*identity.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, 0, len(activities))
	for _, a := range activities {
		responses = append(responses, ActivityResponse{
			ID:        a.ID,
			ActorID:   a.ActorID,
			ActorRole: string(a.ActorRole),
			Action:    a.Action,
			Resource:  a.Resource,
			Detail:    a.Detail,
			Timestamp: a.Timestamp,
		})
	}
	return responses
}
