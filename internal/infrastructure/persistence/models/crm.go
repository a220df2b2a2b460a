package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/crm"
)

// CustomerModel is the persistence model for CRM customers
type CustomerModel struct {
	AuditedAggregateModel
	Name             string          `gorm:"type:varchar(100);not null"`
	Phone            string          `gorm:"type:varchar(20);uniqueIndex;not null"`
	Email            string          `gorm:"type:varchar(255)"`
	Interest         string          `gorm:"type:varchar(20);not null;default:'general'"`
	Platform         string          `gorm:"type:varchar(20);not null"`
	Status           string          `gorm:"type:varchar(20);not null;index"`
	Notes            string          `gorm:"type:text"`
	Tags             string          `gorm:"type:jsonb;default:'[]'"`
	TotalOrders      int             `gorm:"not null;default:0"`
	TotalSpent       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LastOrderDate    *time.Time
	FollowUpRequired bool       `gorm:"not null;default:false;index"`
	FollowUpDate     *time.Time `gorm:"index"`
	FollowUpNotes    string     `gorm:"type:text"`
	History          string     `gorm:"type:jsonb;default:'[]'"`
}

// TableName specifies the table name for CustomerModel
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts CustomerModel to the domain Customer
func (m *CustomerModel) ToDomain() *crm.Customer {
	c := &crm.Customer{
		Name:             m.Name,
		Phone:            m.Phone,
		Email:            m.Email,
		Interest:         crm.Interest(m.Interest),
		Platform:         crm.Platform(m.Platform),
		Status:           crm.CustomerStatus(m.Status),
		Notes:            m.Notes,
		TotalOrders:      m.TotalOrders,
		TotalSpent:       m.TotalSpent,
		LastOrderDate:    m.LastOrderDate,
		FollowUpRequired: m.FollowUpRequired,
		FollowUpDate:     m.FollowUpDate,
		FollowUpNotes:    m.FollowUpNotes,
	}
	m.PopulateAuditedAggregateRoot(&c.AuditedAggregateRoot)

	unmarshalJSON(m.Tags, &c.Tags)
	unmarshalJSON(m.History, &c.History)

	return c
}

// FromDomain populates CustomerModel from the domain Customer
func (m *CustomerModel) FromDomain(c *crm.Customer) {
	m.FromDomainAuditedAggregateRoot(c.AuditedAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Interest = string(c.Interest)
	m.Platform = string(c.Platform)
	m.Status = string(c.Status)
	m.Notes = c.Notes
	m.Tags = marshalJSON(c.Tags, "[]")
	m.TotalOrders = c.TotalOrders
	m.TotalSpent = c.TotalSpent
	m.LastOrderDate = c.LastOrderDate
	m.FollowUpRequired = c.FollowUpRequired
	m.FollowUpDate = c.FollowUpDate
	m.FollowUpNotes = c.FollowUpNotes
	m.History = marshalJSON(c.History, "[]")
}
