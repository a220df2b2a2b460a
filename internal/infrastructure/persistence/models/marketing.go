package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/marketing"
)

// CampaignModel is the persistence model for marketing campaigns
type CampaignModel struct {
	AuditedAggregateModel
	Name             string                `gorm:"type:varchar(100);not null"`
	Platform         string                `gorm:"type:varchar(20);not null;index"`
	Goal             string                `gorm:"type:varchar(30);not null"`
	Status           string                `gorm:"type:varchar(20);not null;index"`
	StartDate        time.Time             `gorm:"not null;index"`
	EndDate          time.Time             `gorm:"not null;index"`
	Budget           decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	Spent            decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	InstagramViews   int64                 `gorm:"not null;default:0"`
	FacebookAdClicks int64                 `gorm:"not null;default:0"`
	WhatsAppClicks   int64                 `gorm:"not null;default:0"`
	TotalImpressions int64                 `gorm:"not null;default:0"`
	TotalClicks      int64                 `gorm:"not null;default:0"`
	ConversionRate   decimal.Decimal       `gorm:"type:decimal(7,4);not null;default:0"`
	Notes            string                `gorm:"type:text"`
	Tags             string                `gorm:"type:jsonb;default:'[]'"`
	Logs             []PerformanceLogModel `gorm:"foreignKey:CampaignID"`
}

// TableName specifies the table name for CampaignModel
func (CampaignModel) TableName() string {
	return "campaigns"
}

// PerformanceLogModel is the persistence model for campaign metric snapshots
type PerformanceLogModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	CampaignID uuid.UUID `gorm:"type:uuid;not null;index"`
	Date       time.Time `gorm:"not null"`
	Metrics    string    `gorm:"type:jsonb;not null;default:'{}'"`
	Notes      string    `gorm:"type:text"`
}

// TableName specifies the table name for PerformanceLogModel
func (PerformanceLogModel) TableName() string {
	return "campaign_performance_logs"
}

// ToDomain converts CampaignModel to the domain Campaign
func (m *CampaignModel) ToDomain() *marketing.Campaign {
	c := &marketing.Campaign{
		Name:      m.Name,
		Platform:  marketing.Platform(m.Platform),
		Goal:      marketing.Goal(m.Goal),
		Status:    marketing.CampaignStatus(m.Status),
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Budget:    m.Budget,
		Spent:     m.Spent,
		Metrics: marketing.Metrics{
			InstagramViews:   m.InstagramViews,
			FacebookAdClicks: m.FacebookAdClicks,
			WhatsAppClicks:   m.WhatsAppClicks,
			TotalImpressions: m.TotalImpressions,
			TotalClicks:      m.TotalClicks,
			ConversionRate:   m.ConversionRate,
		},
		Notes: m.Notes,
	}
	m.PopulateAuditedAggregateRoot(&c.AuditedAggregateRoot)

	unmarshalJSON(m.Tags, &c.Tags)

	c.Logs = make([]marketing.PerformanceLog, 0, len(m.Logs))
	for _, log := range m.Logs {
		c.Logs = append(c.Logs, log.ToDomain())
	}

	return c
}

// FromDomain populates CampaignModel from the domain Campaign
func (m *CampaignModel) FromDomain(c *marketing.Campaign) {
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	m.Name = c.Name
	m.Platform = string(c.Platform)
	m.Goal = string(c.Goal)
	m.Status = string(c.Status)
	m.StartDate = c.StartDate
	m.EndDate = c.EndDate
	m.Budget = c.Budget
	m.Spent = c.Spent
	m.InstagramViews = c.Metrics.InstagramViews
	m.FacebookAdClicks = c.Metrics.FacebookAdClicks
	m.WhatsAppClicks = c.Metrics.WhatsAppClicks
	m.TotalImpressions = c.Metrics.TotalImpressions
	m.TotalClicks = c.Metrics.TotalClicks
	m.ConversionRate = c.Metrics.ConversionRate
	m.Notes = c.Notes
	m.Tags = marshalJSON(c.Tags, "[]")

	m.Logs = make([]PerformanceLogModel, 0, len(c.Logs))
	for _, log := range c.Logs {
		var lm PerformanceLogModel
		lm.FromDomain(c.ID, log)
		m.Logs = append(m.Logs, lm)
	}
}

// ToDomain converts PerformanceLogModel to the domain PerformanceLog
func (m *PerformanceLogModel) ToDomain() marketing.PerformanceLog {
	log := marketing.PerformanceLog{
		ID:    m.ID,
		Date:  m.Date,
		Notes: m.Notes,
	}
	unmarshalJSON(m.Metrics, &log.Metrics)
	return log
}

// FromDomain populates PerformanceLogModel from the domain PerformanceLog
func (m *PerformanceLogModel) FromDomain(campaignID uuid.UUID, log marketing.PerformanceLog) {
	m.ID = log.ID
	m.CampaignID = campaignID
	m.Date = log.Date
	m.Metrics = marshalJSON(log.Metrics, "{}")
	m.Notes = log.Notes
}
