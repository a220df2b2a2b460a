package crm

import (
	"github.com/judn/backend/internal/domain/shared"
)

const (
	EventTypeCustomerCreated       = "crm.customer.created"
	EventTypeCustomerStatusChanged = "crm.customer.status_changed"
)

// CustomerCreatedEvent is published when a customer record is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Platform Platform `json:"platform"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, "Customer", c.ID),
		Name:            c.Name,
		Phone:           c.Phone,
		Platform:        c.Platform,
	}
}

// CustomerStatusChangedEvent is published when a customer moves to a new
// lifecycle stage
type CustomerStatusChangedEvent struct {
	shared.BaseDomainEvent
	Phone          string         `json:"phone"`
	PreviousStatus CustomerStatus `json:"previous_status"`
	NewStatus      CustomerStatus `json:"new_status"`
}

// NewCustomerStatusChangedEvent creates a new CustomerStatusChangedEvent
func NewCustomerStatusChangedEvent(c *Customer, previous CustomerStatus) *CustomerStatusChangedEvent {
	return &CustomerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerStatusChanged, "Customer", c.ID),
		Phone:           c.Phone,
		PreviousStatus:  previous,
		NewStatus:       c.Status,
	}
}
