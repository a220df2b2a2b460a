package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/judn/backend/internal/domain/identity"
)

// UserModel is the persistence model for admin panel accounts
type UserModel struct {
	AuditedAggregateModel
	Name           string `gorm:"type:varchar(100);not null"`
	Email          string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone          string `gorm:"type:varchar(20)"`
	PasswordHash   string `gorm:"type:varchar(100);not null"`
	Role           string `gorm:"type:varchar(20);not null;index"`
	Active         bool   `gorm:"not null;default:true;index"`
	LastLoginAt    *time.Time
	FailedAttempts int `gorm:"not null;default:0"`
	LockedUntil    *time.Time
}

// TableName specifies the table name for UserModel
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts UserModel to the domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Name:           m.Name,
		Email:          m.Email,
		Phone:          m.Phone,
		PasswordHash:   m.PasswordHash,
		Role:           identity.Role(m.Role),
		Active:         m.Active,
		LastLoginAt:    m.LastLoginAt,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
	m.PopulateAuditedAggregateRoot(&u.AuditedAggregateRoot)
	return u
}

// FromDomain populates UserModel from the domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAuditedAggregateRoot(u.AuditedAggregateRoot)
	m.Name = u.Name
	m.Email = u.Email
	m.Phone = u.Phone
	m.PasswordHash = u.PasswordHash
	m.Role = string(u.Role)
	m.Active = u.Active
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// ActivityModel is the persistence model for the admin audit trail
type ActivityModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ActorID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ActorRole string    `gorm:"type:varchar(20);not null"`
	Action    string    `gorm:"type:varchar(100);not null;index"`
	Resource  string    `gorm:"type:varchar(255);not null"`
	Detail    string    `gorm:"type:text"`
	Timestamp time.Time `gorm:"not null;index"`
}

// TableName specifies the table name for ActivityModel
func (ActivityModel) TableName() string {
	return "activities"
}

// ToDomain converts ActivityModel to the domain Activity
func (m *ActivityModel) ToDomain() *identity.Activity {
	return &identity.Activity{
		ID:        m.ID,
		ActorID:   m.ActorID,
		ActorRole: identity.Role(m.ActorRole),
		Action:    m.Action,
		Resource:  m.Resource,
		Detail:    m.Detail,
		Timestamp: m.Timestamp,
	}
}

// FromDomain populates ActivityModel from the domain Activity
func (m *ActivityModel) FromDomain(a *identity.Activity) {
	m.ID = a.ID
	m.ActorID = a.ActorID
	m.ActorRole = string(a.ActorRole)
	m.Action = a.Action
	m.Resource = a.Resource
	m.Detail = a.Detail
	m.Timestamp = a.Timestamp
}
