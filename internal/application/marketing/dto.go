package marketing

import (
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/marketing"
	"github.com/shopspring/decimal"
)

// CreateRequest represents a request to create a campaign
type CreateRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Platform  string          `json:"platform" binding:"required"`
	Goal      string          `json:"goal" binding:"required"`
	StartDate time.Time       `json:"start_date" binding:"required"`
	EndDate   time.Time       `json:"end_date" binding:"required"`
	Budget    decimal.Decimal `json:"budget"`
	Notes     string          `json:"notes" binding:"omitempty,max=1000"`
	Tags      []string        `json:"tags"`
}

// UpdateRequest represents a request to update a campaign
type UpdateRequest struct {
	Name      *string          `json:"name" binding:"omitempty,max=100"`
	Goal      *string          `json:"goal"`
	Status    *string          `json:"status"`
	StartDate *time.Time       `json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
	Budget    *decimal.Decimal `json:"budget"`
	Notes     *string          `json:"notes" binding:"omitempty,max=1000"`
	Tags      []string         `json:"tags"`
}

// MetricsInput is the campaign counter set in requests
type MetricsInput struct {
	InstagramViews   int64           `json:"instagram_views" binding:"min=0"`
	FacebookAdClicks int64           `json:"facebook_ad_clicks" binding:"min=0"`
	WhatsAppClicks   int64           `json:"whatsapp_clicks" binding:"min=0"`
	TotalImpressions int64           `json:"total_impressions" binding:"min=0"`
	TotalClicks      int64           `json:"total_clicks" binding:"min=0"`
	ConversionRate   decimal.Decimal `json:"conversion_rate"`
}

// LogPerformanceRequest appends a metrics snapshot to the campaign
type LogPerformanceRequest struct {
	Metrics MetricsInput     `json:"metrics" binding:"required"`
	Spend   *decimal.Decimal `json:"spend"`
	Notes   string           `json:"notes" binding:"omitempty,max=500"`
}

// ListFilter represents filter options for the campaign list
type ListFilter struct {
	Search   string  `form:"search"`
	Status   *string `form:"status"`
	Platform *string `form:"platform"`
	Goal     *string `form:"goal"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// MetricsResponse is the campaign counter set in API responses
type MetricsResponse struct {
	InstagramViews   int64           `json:"instagram_views"`
	FacebookAdClicks int64           `json:"facebook_ad_clicks"`
	WhatsAppClicks   int64           `json:"whatsapp_clicks"`
	TotalImpressions int64           `json:"total_impressions"`
	TotalClicks      int64           `json:"total_clicks"`
	ConversionRate   decimal.Decimal `json:"conversion_rate"`
}

// PerformanceLogResponse is one metrics snapshot in API responses
type PerformanceLogResponse struct {
	ID      uuid.UUID       `json:"id"`
	Date    time.Time       `json:"date"`
	Metrics MetricsResponse `json:"metrics"`
	Notes   string          `json:"notes,omitempty"`
}

// Response represents a campaign in API responses
type Response struct {
	ID                uuid.UUID                `json:"id"`
	Name              string                   `json:"name"`
	Platform          string                   `json:"platform"`
	Goal              string                   `json:"goal"`
	Status            string                   `json:"status"`
	StartDate         time.Time                `json:"start_date"`
	EndDate           time.Time                `json:"end_date"`
	DurationDays      int                      `json:"duration_days"`
	Progress          decimal.Decimal          `json:"progress"`
	Budget            decimal.Decimal          `json:"budget"`
	Spent             decimal.Decimal          `json:"spent"`
	BudgetUtilization decimal.Decimal          `json:"budget_utilization"`
	Metrics           MetricsResponse          `json:"metrics"`
	Logs              []PerformanceLogResponse `json:"logs,omitempty"`
	Notes             string                   `json:"notes,omitempty"`
	Tags              []string                 `json:"tags"`
	CreatedAt         time.Time                `json:"created_at"`
	UpdatedAt         time.Time                `json:"updated_at"`
}

// ToResponse converts a campaign to its API representation
func ToResponse(c *marketing.Campaign) Response {
	logs := make([]PerformanceLogResponse, len(c.Logs))
	for i, l := range c.Logs {
		logs[i] = PerformanceLogResponse{
			ID:      l.ID,
			Date:    l.Date,
			Metrics: toMetricsResponse(l.Metrics),
			Notes:   l.Notes,
		}
	}

	return Response{
		ID:                c.ID,
		Name:              c.Name,
		Platform:          string(c.Platform),
		Goal:              string(c.Goal),
		Status:            string(c.Status),
		StartDate:         c.StartDate,
		EndDate:           c.EndDate,
		DurationDays:      c.DurationDays(),
		Progress:          c.Progress(time.Now()),
		Budget:            c.Budget,
		Spent:             c.Spent,
		BudgetUtilization: c.BudgetUtilization(),
		Metrics:           toMetricsResponse(c.Metrics),
		Logs:              logs,
		Notes:             c.Notes,
		Tags:              c.Tags,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

// ToResponses converts a list of campaigns
func ToResponses(campaigns []*marketing.Campaign) []Response {
	responses := make([]Response, len(campaigns))
	for i, c := range campaigns {
		responses[i] = ToResponse(c)
	}
	return responses
}

func toMetricsResponse(m marketing.Metrics) MetricsResponse {
	return MetricsResponse{
		InstagramViews:   m.InstagramViews,
		FacebookAdClicks: m.FacebookAdClicks,
		WhatsAppClicks:   m.WhatsAppClicks,
		TotalImpressions: m.TotalImpressions,
		TotalClicks:      m.TotalClicks,
		ConversionRate:   m.ConversionRate,
	}
}
