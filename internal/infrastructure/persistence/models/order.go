package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/order"
)

// OrderModel is the persistence model for orders
type OrderModel struct {
	AuditedAggregateModel
	OrderNumber    string              `gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerName   string              `gorm:"type:varchar(100);not null"`
	CustomerPhone  string              `gorm:"type:varchar(20);not null;index"`
	CustomerEmail  string              `gorm:"type:varchar(255)"`
	ShippingStreet string              `gorm:"type:varchar(255)"`
	ShippingCity   string              `gorm:"type:varchar(100)"`
	ShippingState  string              `gorm:"type:varchar(100)"`
	ShippingZip    string              `gorm:"type:varchar(20)"`
	Status         string              `gorm:"type:varchar(20);not null;index"`
	Subtotal       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Tax            decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Shipping       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Discount       decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal     `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentMethod  string              `gorm:"type:varchar(20);not null"`
	PaymentStatus  string              `gorm:"type:varchar(20);not null;default:'pending'"`
	TrackingNumber string              `gorm:"type:varchar(100)"`
	CustomerNotes  string              `gorm:"type:text"`
	AdminNotes     string              `gorm:"type:text"`
	Items          []OrderItemModel    `gorm:"foreignKey:OrderID"`
	StatusHistory  []StatusChangeModel `gorm:"foreignKey:OrderID"`
}

// TableName specifies the table name for OrderModel
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for order line items
type OrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Name      string          `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null"`
	Size      string          `gorm:"type:varchar(10)"`
	Color     string          `gorm:"type:varchar(50)"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName specifies the table name for OrderItemModel
func (OrderItemModel) TableName() string {
	return "order_items"
}

// StatusChangeModel is the persistence model for order status history
type StatusChangeModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status    string     `gorm:"type:varchar(20);not null"`
	Timestamp time.Time  `gorm:"not null"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	Notes     string     `gorm:"type:text"`
}

// TableName specifies the table name for StatusChangeModel
func (StatusChangeModel) TableName() string {
	return "order_status_history"
}

// ToDomain converts OrderModel to the domain Order
func (m *OrderModel) ToDomain() *order.Order {
	o := &order.Order{
		OrderNumber: m.OrderNumber,
		Customer: order.CustomerSnapshot{
			Name:  m.CustomerName,
			Phone: m.CustomerPhone,
			Email: m.CustomerEmail,
			Address: order.Address{
				Street:     m.ShippingStreet,
				City:       m.ShippingCity,
				State:      m.ShippingState,
				PostalCode: m.ShippingZip,
			},
		},
		Status:         order.Status(m.Status),
		Subtotal:       m.Subtotal,
		Tax:            m.Tax,
		Shipping:       m.Shipping,
		Discount:       m.Discount,
		Total:          m.Total,
		PaymentMethod:  order.PaymentMethod(m.PaymentMethod),
		PaymentStatus:  order.PaymentStatus(m.PaymentStatus),
		TrackingNumber: m.TrackingNumber,
		CustomerNotes:  m.CustomerNotes,
		AdminNotes:     m.AdminNotes,
	}
	m.PopulateAuditedAggregateRoot(&o.AuditedAggregateRoot)

	o.Items = make([]order.Item, 0, len(m.Items))
	for _, item := range m.Items {
		o.Items = append(o.Items, item.ToDomain())
	}
	o.StatusHistory = make([]order.StatusChange, 0, len(m.StatusHistory))
	for _, change := range m.StatusHistory {
		o.StatusHistory = append(o.StatusHistory, change.ToDomain())
	}

	return o
}

// FromDomain populates OrderModel from the domain Order
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAuditedAggregateRoot(o.AuditedAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerName = o.Customer.Name
	m.CustomerPhone = o.Customer.Phone
	m.CustomerEmail = o.Customer.Email
	m.ShippingStreet = o.Customer.Address.Street
	m.ShippingCity = o.Customer.Address.City
	m.ShippingState = o.Customer.Address.State
	m.ShippingZip = o.Customer.Address.PostalCode
	m.Status = string(o.Status)
	m.Subtotal = o.Subtotal
	m.Tax = o.Tax
	m.Shipping = o.Shipping
	m.Discount = o.Discount
	m.Total = o.Total
	m.PaymentMethod = string(o.PaymentMethod)
	m.PaymentStatus = string(o.PaymentStatus)
	m.TrackingNumber = o.TrackingNumber
	m.CustomerNotes = o.CustomerNotes
	m.AdminNotes = o.AdminNotes

	m.Items = make([]OrderItemModel, 0, len(o.Items))
	for _, item := range o.Items {
		var im OrderItemModel
		im.FromDomain(item)
		m.Items = append(m.Items, im)
	}
	m.StatusHistory = make([]StatusChangeModel, 0, len(o.StatusHistory))
	for _, change := range o.StatusHistory {
		var cm StatusChangeModel
		cm.FromDomain(change)
		m.StatusHistory = append(m.StatusHistory, cm)
	}
}

// ToDomain converts OrderItemModel to the domain Item
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		ID:        m.ID,
		OrderID:   m.OrderID,
		ProductID: m.ProductID,
		Name:      m.Name,
		UnitPrice: m.UnitPrice,
		Quantity:  m.Quantity,
		Size:      m.Size,
		Color:     m.Color,
		Total:     m.Total,
		CreatedAt: m.CreatedAt,
	}
}

// FromDomain populates OrderItemModel from the domain Item
func (m *OrderItemModel) FromDomain(item order.Item) {
	m.ID = item.ID
	m.OrderID = item.OrderID
	m.ProductID = item.ProductID
	m.Name = item.Name
	m.UnitPrice = item.UnitPrice
	m.Quantity = item.Quantity
	m.Size = item.Size
	m.Color = item.Color
	m.Total = item.Total
	m.CreatedAt = item.CreatedAt
}

// ToDomain converts StatusChangeModel to the domain StatusChange
func (m *StatusChangeModel) ToDomain() order.StatusChange {
	return order.StatusChange{
		ID:        m.ID,
		OrderID:   m.OrderID,
		Status:    order.Status(m.Status),
		Timestamp: m.Timestamp,
		UpdatedBy: m.UpdatedBy,
		Notes:     m.Notes,
	}
}

// FromDomain populates StatusChangeModel from the domain StatusChange
func (m *StatusChangeModel) FromDomain(change order.StatusChange) {
	m.ID = change.ID
	m.OrderID = change.OrderID
	m.Status = string(change.Status)
	m.Timestamp = change.Timestamp
	m.UpdatedBy = change.UpdatedBy
	m.Notes = change.Notes
}
