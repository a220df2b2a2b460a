package shared

import (
	"time"

	"github.com/google/uuid"
)

// BaseEntity carries the identity and lifecycle timestamps every
// domain entity shares. Aggregates embed it through AggregateRoot.
type BaseEntity struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBaseEntity generates a fresh identity with both timestamps set to now
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
