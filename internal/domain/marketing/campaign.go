package marketing

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CampaignStatus is the campaign lifecycle state
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

// IsValid checks if the status is one of the known statuses
func (s CampaignStatus) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusCompleted:
		return true
	}
	return false
}

func (s CampaignStatus) String() string {
	return string(s)
}

// Platform is the advertising channel
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformFacebook  Platform = "facebook"
	PlatformWhatsApp  Platform = "whatsapp"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// IsValid checks if the platform is one of the known platforms
func (p Platform) IsValid() bool {
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformWhatsApp, PlatformTikTok, PlatformYouTube:
		return true
	}
	return false
}

// Goal is what the campaign is optimizing for
type Goal string

const (
	GoalDriveClicks       Goal = "drive_clicks"
	GoalIncreaseAwareness Goal = "increase_awareness"
	GoalGenerateLeads     Goal = "generate_leads"
	GoalBoostSales        Goal = "boost_sales"
)

// IsValid checks if the goal is one of the known goals
func (g Goal) IsValid() bool {
	switch g {
	case GoalDriveClicks, GoalIncreaseAwareness, GoalGenerateLeads, GoalBoostSales:
		return true
	}
	return false
}

// Metrics are the accumulated campaign counters
type Metrics struct {
	InstagramViews   int64           `json:"instagram_views"`
	FacebookAdClicks int64           `json:"facebook_ad_clicks"`
	WhatsAppClicks   int64           `json:"whatsapp_clicks"`
	TotalImpressions int64           `json:"total_impressions"`
	TotalClicks      int64           `json:"total_clicks"`
	ConversionRate   decimal.Decimal `json:"conversion_rate"`
}

// PerformanceLog is one append-only metrics snapshot with optional notes
type PerformanceLog struct {
	ID      uuid.UUID `json:"id"`
	Date    time.Time `json:"date"`
	Metrics Metrics   `json:"metrics"`
	Notes   string    `json:"notes"`
}

// Campaign is the aggregate root for marketing campaigns
type Campaign struct {
	shared.AuditedAggregateRoot
	Name      string
	Platform  Platform
	Goal      Goal
	Status    CampaignStatus
	StartDate time.Time
	EndDate   time.Time
	Budget    decimal.Decimal
	Spent     decimal.Decimal
	Metrics   Metrics
	Logs      []PerformanceLog
	Notes     string
	Tags      []string
}

// NewCampaign creates a new draft campaign
func NewCampaign(name string, platform Platform, goal Goal, start, end time.Time, budget decimal.Decimal) (*Campaign, error) {
	if err := validateCampaignName(name); err != nil {
		return nil, err
	}
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown campaign platform")
	}
	if !goal.IsValid() {
		return nil, shared.NewDomainError("INVALID_GOAL", "Unknown campaign goal")
	}
	if err := validateDates(start, end); err != nil {
		return nil, err
	}
	if budget.IsNegative() {
		return nil, shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}

	campaign := &Campaign{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		Name:                 strings.TrimSpace(name),
		Platform:             platform,
		Goal:                 goal,
		Status:               StatusDraft,
		StartDate:            start,
		EndDate:              end,
		Budget:               budget,
		Spent:                decimal.Zero,
	}

	campaign.AddDomainEvent(NewCampaignCreatedEvent(campaign))

	return campaign, nil
}

// Update updates the campaign's plan fields
func (c *Campaign) Update(name string, goal Goal, start, end time.Time, budget decimal.Decimal, notes string) error {
	if err := validateCampaignName(name); err != nil {
		return err
	}
	if !goal.IsValid() {
		return shared.NewDomainError("INVALID_GOAL", "Unknown campaign goal")
	}
	if err := validateDates(start, end); err != nil {
		return err
	}
	if budget.IsNegative() {
		return shared.NewDomainError("INVALID_BUDGET", "Budget cannot be negative")
	}
	if len(notes) > 1000 {
		return shared.NewDomainError("INVALID_NOTES", "Notes cannot exceed 1000 characters")
	}

	c.Name = strings.TrimSpace(name)
	c.Goal = goal
	c.StartDate = start
	c.EndDate = end
	c.Budget = budget
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetStatus moves the campaign to a new lifecycle state
func (c *Campaign) SetStatus(status CampaignStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown campaign status")
	}
	if c.Status == StatusCompleted && status != StatusCompleted {
		return shared.NewDomainError("CAMPAIGN_COMPLETED", "A completed campaign cannot be reopened")
	}

	old := c.Status
	c.Status = status
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	if old != status {
		c.AddDomainEvent(NewCampaignStatusChangedEvent(c, old))
	}

	return nil
}

// RecordSpend adds to the spent amount
func (c *Campaign) RecordSpend(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_SPEND", "Spend amount cannot be negative")
	}

	c.Spent = c.Spent.Add(amount)
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// LogPerformance replaces the live counters and appends an immutable
// snapshot to the performance log
func (c *Campaign) LogPerformance(metrics Metrics, notes string) {
	c.Metrics = metrics
	c.Logs = append(c.Logs, PerformanceLog{
		ID:      uuid.New(),
		Date:    time.Now(),
		Metrics: metrics,
		Notes:   notes,
	})
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetTags replaces the campaign tags
func (c *Campaign) SetTags(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	c.Tags = cleaned
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// DurationDays returns the planned campaign length in days, rounded up
func (c *Campaign) DurationDays() int {
	if !c.EndDate.After(c.StartDate) {
		return 0
	}
	hours := c.EndDate.Sub(c.StartDate).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

// Progress returns how far through its schedule the campaign is, as a
// percentage clamped to 0..100
func (c *Campaign) Progress(now time.Time) decimal.Decimal {
	total := c.EndDate.Sub(c.StartDate)
	if total <= 0 {
		return decimal.Zero
	}
	elapsed := now.Sub(c.StartDate)
	pct := decimal.NewFromFloat(elapsed.Seconds() / total.Seconds() * 100)
	if pct.IsNegative() {
		return decimal.Zero
	}
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}

// BudgetUtilization returns spent as a percentage of budget, zero when
// there is no budget
func (c *Campaign) BudgetUtilization() decimal.Decimal {
	if !c.Budget.GreaterThan(decimal.Zero) {
		return decimal.Zero
	}
	return c.Spent.Div(c.Budget).Mul(decimal.NewFromInt(100)).Round(2)
}

// IsRunning returns true when the campaign is active and inside its
// scheduled window
func (c *Campaign) IsRunning(now time.Time) bool {
	return c.Status == StatusActive && !now.Before(c.StartDate) && !now.After(c.EndDate)
}

func validateCampaignName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Campaign name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Campaign name cannot exceed 100 characters")
	}
	return nil
}

func validateDates(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_DATES", "Start and end dates are required")
	}
	if !end.After(start) {
		return shared.NewDomainError("INVALID_DATES", "End date must be after start date")
	}
	return nil
}
