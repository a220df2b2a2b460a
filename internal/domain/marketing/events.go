package marketing

import (
	"github.com/judn/backend/internal/domain/shared"
)

const (
	EventTypeCampaignCreated       = "marketing.campaign.created"
	EventTypeCampaignStatusChanged = "marketing.campaign.status_changed"
)

// CampaignCreatedEvent is published when a campaign is created
type CampaignCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`
	Goal     Goal     `json:"goal"`
}

// NewCampaignCreatedEvent creates a new CampaignCreatedEvent
func NewCampaignCreatedEvent(c *Campaign) *CampaignCreatedEvent {
	return &CampaignCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignCreated, "Campaign", c.ID),
		Name:            c.Name,
		Platform:        c.Platform,
		Goal:            c.Goal,
	}
}

// CampaignStatusChangedEvent is published when a campaign changes state
type CampaignStatusChangedEvent struct {
	shared.BaseDomainEvent
	Name           string         `json:"name"`
	PreviousStatus CampaignStatus `json:"previous_status"`
	NewStatus      CampaignStatus `json:"new_status"`
}

// NewCampaignStatusChangedEvent creates a new CampaignStatusChangedEvent
func NewCampaignStatusChangedEvent(c *Campaign, previous CampaignStatus) *CampaignStatusChangedEvent {
	return &CampaignStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCampaignStatusChanged, "Campaign", c.ID),
		Name:            c.Name,
		PreviousStatus:  previous,
		NewStatus:       c.Status,
	}
}
