package order

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/shared"
)

// Status represents the fulfilment status of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPacked    Status = "packed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPacked, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true for states with no expected follow-up
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// AllStatuses returns every valid status value
func AllStatuses() []Status {
	return []Status{
		StatusPending, StatusConfirmed, StatusPacked,
		StatusShipped, StatusDelivered, StatusCancelled,
	}
}

// SalesStatuses returns the statuses that count toward sales totals
func SalesStatuses() []Status {
	return []Status{StatusConfirmed, StatusPacked, StatusShipped, StatusDelivered}
}

// PaymentMethod represents how the customer pays
type PaymentMethod string

const (
	PaymentBkash          PaymentMethod = "bkash"
	PaymentNagad          PaymentMethod = "nagad"
	PaymentVisa           PaymentMethod = "visa"
	PaymentMastercard     PaymentMethod = "mastercard"
	PaymentPaypal         PaymentMethod = "paypal"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// IsValid checks if the payment method is one of the supported values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentBkash, PaymentNagad, PaymentVisa, PaymentMastercard, PaymentPaypal, PaymentCashOnDelivery:
		return true
	}
	return false
}

// PaymentStatus represents the state of the payment
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the payment status is one of the supported values
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

// Address is the shipping address captured on the order
type Address struct {
	Street     string
	City       string
	State      string
	PostalCode string
}

// Combined returns the address as a single display string
func (a Address) Combined() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.State, a.PostalCode} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, ", ")
}

// CustomerSnapshot is the customer contact info copied onto the order at
// checkout time. It is a point-in-time copy, not a live reference.
type CustomerSnapshot struct {
	Name    string
	Phone   string
	Email   string
	Address Address
}

// Item is a line item in an order
type Item struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID *uuid.UUID // nil when the storefront submitted an item without a catalog reference
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Size      string
	Color     string
	Total     decimal.Decimal // UnitPrice * Quantity
	CreatedAt time.Time
}

// NewItem creates a new order line item
func NewItem(orderID uuid.UUID, productID *uuid.UUID, name string, unitPrice decimal.Decimal, quantity int, size, color string) (*Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_NAME", "Item name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Item price cannot be negative")
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}

	return &Item{
		ID:        uuid.New(),
		OrderID:   orderID,
		ProductID: productID,
		Name:      strings.TrimSpace(name),
		UnitPrice: unitPrice,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt: time.Now(),
	}, nil
}

// StatusChange is one entry in an order's status history
type StatusChange struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	Status    Status
	Timestamp time.Time
	UpdatedBy *uuid.UUID // nil for the system-generated entry at checkout
	Notes     string
}

// Order is the aggregate root for a customer order. It owns its embedded
// items and status history; the referenced products are read-only context.
type Order struct {
	shared.AuditedAggregateRoot
	OrderNumber    string // public JUDN-xxx identifier, generated once
	Customer       CustomerSnapshot
	Items          []Item
	Status         Status
	StatusHistory  []StatusChange
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Shipping       decimal.Decimal
	Discount       decimal.Decimal
	Total          decimal.Decimal // Subtotal + Tax + Shipping - Discount, always recomputed
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	TrackingNumber string
	CustomerNotes  string
	AdminNotes     string
}

// New creates a new pending order for the given customer snapshot.
// The status history is seeded with the initial pending entry.
func New(customer CustomerSnapshot, paymentMethod PaymentMethod) (*Order, error) {
	if strings.TrimSpace(customer.Name) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name is required")
	}
	if strings.TrimSpace(customer.Phone) == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_PHONE", "Customer phone is required")
	}
	if !paymentMethod.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unsupported payment method")
	}

	o := &Order{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		OrderNumber:          NewOrderNumber(),
		Customer:             customer,
		Items:                make([]Item, 0),
		Status:               StatusPending,
		Subtotal:             decimal.Zero,
		Tax:                  decimal.Zero,
		Shipping:             decimal.Zero,
		Discount:             decimal.Zero,
		Total:                decimal.Zero,
		PaymentMethod:        paymentMethod,
		PaymentStatus:        PaymentStatusPending,
	}

	o.StatusHistory = []StatusChange{{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    StatusPending,
		Timestamp: o.CreatedAt,
	}}

	o.AddDomainEvent(NewCreatedEvent(o))

	return o, nil
}

// AddItem adds a line item and recomputes the totals
func (o *Order) AddItem(productID *uuid.UUID, name string, unitPrice decimal.Decimal, quantity int, size, color string) (*Item, error) {
	item, err := NewItem(o.ID, productID, name, unitPrice, quantity, size, color)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return item, nil
}

// SetCharges sets the tax, shipping and discount amounts and recomputes the total
func (o *Order) SetCharges(tax, shipping, discount decimal.Decimal) error {
	if tax.IsNegative() || shipping.IsNegative() || discount.IsNegative() {
		return shared.NewDomainError("INVALID_CHARGE", "Tax, shipping and discount cannot be negative")
	}

	o.Tax = tax
	o.Shipping = shipping
	o.Discount = discount
	o.recalculateTotals()
	o.UpdatedAt = time.Now()

	return nil
}

// SetStatus assigns a new status and appends a history entry.
//
// Any valid status may be assigned regardless of the current one; the
// transition graph is deliberately unrestricted and an assignment of the
// already-current status is accepted as a no-op that still gets a history
// entry. History entries are append-only and kept in insertion order.
func (o *Order) SetStatus(newStatus Status, actor *uuid.UUID, notes string) error {
	if !newStatus.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+string(newStatus))
	}

	previous := o.Status
	now := time.Now()
	o.Status = newStatus
	o.StatusHistory = append(o.StatusHistory, StatusChange{
		ID:        uuid.New(),
		OrderID:   o.ID,
		Status:    newStatus,
		Timestamp: now,
		UpdatedBy: actor,
		Notes:     notes,
	})
	if actor != nil {
		o.SetUpdatedBy(*actor)
	}
	o.UpdatedAt = now

	o.AddDomainEvent(NewStatusChangedEvent(o, previous, newStatus))

	return nil
}

// SetPaymentStatus updates the payment status
func (o *Order) SetPaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", "Unknown payment status: "+string(status))
	}
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	return nil
}

// SetTrackingNumber records the shipment tracking number
func (o *Order) SetTrackingNumber(tracking string) {
	o.TrackingNumber = strings.TrimSpace(tracking)
	o.UpdatedAt = time.Now()
}

// SetNotes sets the customer and admin notes
func (o *Order) SetNotes(customerNotes, adminNotes string) {
	o.CustomerNotes = customerNotes
	o.AdminNotes = adminNotes
	o.UpdatedAt = time.Now()
}

// Timeline returns the status history ordered by insertion, oldest first.
// The returned slice is a copy; mutating it does not affect the order.
func (o *Order) Timeline() []StatusChange {
	timeline := make([]StatusChange, len(o.StatusHistory))
	copy(timeline, o.StatusHistory)
	return timeline
}

// CurrentStatusChange returns the most recent history entry, or nil for an
// order persisted without history (not produced by this code path).
func (o *Order) CurrentStatusChange() *StatusChange {
	if len(o.StatusHistory) == 0 {
		return nil
	}
	return &o.StatusHistory[len(o.StatusHistory)-1]
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all item quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// CountsTowardSales reports whether the order contributes to sales totals
func (o *Order) CountsTowardSales() bool {
	for _, s := range SalesStatuses() {
		if o.Status == s {
			return true
		}
	}
	return false
}

// recalculateTotals recomputes subtotal and total from the line items and
// charges. Totals are never trusted from input.
func (o *Order) recalculateTotals() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.Total)
	}
	o.Subtotal = subtotal
	o.Total = o.Subtotal.Add(o.Tax).Add(o.Shipping).Sub(o.Discount)
}
