package marketing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/shared"
)

// CampaignFilter narrows campaign queries
type CampaignFilter struct {
	shared.Filter
	Status   *CampaignStatus
	Platform *Platform
	Goal     *Goal
	Search   string // matches name and tags
}

// PlatformStats aggregates campaign numbers per platform
type PlatformStats struct {
	Platform         Platform `json:"platform"`
	Count            int64    `json:"count"`
	TotalBudget      string   `json:"total_budget"`
	TotalSpent       string   `json:"total_spent"`
	TotalClicks      int64    `json:"total_clicks"`
	TotalImpressions int64    `json:"total_impressions"`
}

// Repository is the persistence interface for campaigns
type Repository interface {
	// FindByID finds a campaign by id
	FindByID(ctx context.Context, id uuid.UUID) (*Campaign, error)

	// FindAll returns campaigns matching the filter
	FindAll(ctx context.Context, filter CampaignFilter) ([]*Campaign, error)

	// Count returns the number of campaigns matching the filter
	Count(ctx context.Context, filter CampaignFilter) (int64, error)

	// FindRunning returns active campaigns inside their scheduled window
	FindRunning(ctx context.Context, now time.Time) ([]*Campaign, error)

	// StatsByPlatform aggregates counts, budget and metrics per platform
	StatsByPlatform(ctx context.Context) ([]PlatformStats, error)

	// Save persists the campaign. A stale version returns
	// shared.ErrConcurrencyConflict.
	Save(ctx context.Context, campaign *Campaign) error

	// Delete removes the campaign
	Delete(ctx context.Context, id uuid.UUID) error
}
