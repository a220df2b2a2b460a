package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated       = "OrderCreated"
	EventTypeOrderStatusChanged = "OrderStatusChanged"
)

// CreatedEvent is raised when a new order is placed at checkout
type CreatedEvent struct {
	shared.BaseDomainEvent
	OrderID       uuid.UUID       `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
}

// NewCreatedEvent creates a new CreatedEvent
func NewCreatedEvent(o *Order) *CreatedEvent {
	return &CreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerName:    o.Customer.Name,
		CustomerPhone:   o.Customer.Phone,
		ItemCount:       len(o.Items),
		Total:           o.Total,
	}
}

// EventType returns the event type name
func (e *CreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// StatusChangedEvent is raised on every status assignment, including a
// no-op assignment of the already-current status
type StatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID  `json:"order_id"`
	OrderNumber    string     `json:"order_number"`
	PreviousStatus Status     `json:"previous_status"`
	NewStatus      Status     `json:"new_status"`
	UpdatedBy      *uuid.UUID `json:"updated_by,omitempty"`
}

// NewStatusChangedEvent creates a new StatusChangedEvent
func NewStatusChangedEvent(o *Order, previous, current Status) *StatusChangedEvent {
	var actor *uuid.UUID
	if last := o.CurrentStatusChange(); last != nil {
		actor = last.UpdatedBy
	}
	return &StatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		PreviousStatus:  previous,
		NewStatus:       current,
		UpdatedBy:       actor,
	}
}

// EventType returns the event type name
func (e *StatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}
