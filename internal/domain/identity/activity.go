package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/shared"
)

// Activity is one audit trail entry for a mutating admin action.
// Entries are append-only and written fire-and-forget: a failed write
// never blocks the action it describes.
type Activity struct {
	ID        uuid.UUID
	ActorID   uuid.UUID
	ActorRole Role
	Action    string // e.g. "order.status_update"
	Resource  string // e.g. "orders/JUDN-ABC123-XYZ01"
	Detail    string
	Timestamp time.Time
}

// NewActivity creates an audit entry stamped with the current time
func NewActivity(actorID uuid.UUID, actorRole Role, action, resource, detail string) *Activity {
	return &Activity{
		ID:        uuid.New(),
		ActorID:   actorID,
		ActorRole: actorRole,
		Action:    action,
		Resource:  resource,
		Detail:    detail,
		Timestamp: time.Now(),
	}
}

// ActivityFilter narrows activity queries
type ActivityFilter struct {
	shared.Filter
	ActorID *uuid.UUID
	Action  string
	From    *time.Time
	To      *time.Time
}

// ActivityRepository is the persistence interface for the audit trail
type ActivityRepository interface {
	// Append stores an entry
	Append(ctx context.Context, activity *Activity) error

	// FindAll returns entries matching the filter, newest first
	FindAll(ctx context.Context, filter ActivityFilter) ([]*Activity, error)

	// Count returns the number of entries matching the filter
	Count(ctx context.Context, filter ActivityFilter) (int64, error)
}
