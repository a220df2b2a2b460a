package crm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/shared"
)

// CustomerFilter narrows customer queries
type CustomerFilter struct {
	shared.Filter
	Status   *CustomerStatus
	Platform *Platform
	Interest *Interest
	Search   string // matches name, phone, email and tags
	FollowUp *bool  // follow-up required with a due date at or before now
}

// Repository is the persistence interface for customers
type Repository interface {
	// FindByID finds a customer by id
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByPhone finds a customer by their unique phone number
	FindByPhone(ctx context.Context, phone string) (*Customer, error)

	// FindAll returns customers matching the filter
	FindAll(ctx context.Context, filter CustomerFilter) ([]*Customer, error)

	// Count returns the number of customers matching the filter
	Count(ctx context.Context, filter CustomerFilter) (int64, error)

	// FindTopSpenders returns customers ordered by total spent
	FindTopSpenders(ctx context.Context, limit int) ([]*Customer, error)

	// CountByStatus returns the number of customers per lifecycle stage
	CountByStatus(ctx context.Context) (map[CustomerStatus]int64, error)

	// CountCreatedSince returns the number of customers created since t
	CountCreatedSince(ctx context.Context, t time.Time) (int64, error)

	// Save persists the customer. A stale version returns
	// shared.ErrConcurrencyConflict.
	Save(ctx context.Context, customer *Customer) error

	// Delete removes the customer
	Delete(ctx context.Context, id uuid.UUID) error
}
