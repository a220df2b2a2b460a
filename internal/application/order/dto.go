package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// ListFilter represents filter options for the order list
type ListFilter struct {
	Search        string     `form:"search"`
	Status        *string    `form:"status"`
	PaymentStatus *string    `form:"payment_status"`
	StartDate     *time.Time `form:"start_date"`
	EndDate       *time.Time `form:"end_date"`
	Page          int        `form:"page"`
	PageSize      int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy       string     `form:"order_by"`
	OrderDir      string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// UpdateStatusRequest represents a request to move an order to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes" binding:"omitempty,max=500"`
}

// UpdateRequest represents a request to update order details
type UpdateRequest struct {
	PaymentStatus  *string          `json:"payment_status"`
	TrackingNumber *string          `json:"tracking_number"`
	AdminNotes     *string          `json:"admin_notes"`
	Tax            *decimal.Decimal `json:"tax"`
	Shipping       *decimal.Decimal `json:"shipping"`
	Discount       *decimal.Decimal `json:"discount"`
}

// ItemResponse represents an order line item in API responses
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID *uuid.UUID      `json:"product_id,omitempty"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

// StatusChangeResponse represents one timeline entry in API responses
type StatusChangeResponse struct {
	Status    string     `json:"status"`
	Timestamp time.Time  `json:"timestamp"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// CustomerResponse represents the customer snapshot in API responses
type CustomerResponse struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address"`
}

// Response represents a full order in API responses
type Response struct {
	ID             uuid.UUID              `json:"id"`
	OrderNumber    string                 `json:"order_number"`
	Customer       CustomerResponse       `json:"customer"`
	Items          []ItemResponse         `json:"items"`
	Status         string                 `json:"status"`
	StatusHistory  []StatusChangeResponse `json:"status_history"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	Tax            decimal.Decimal        `json:"tax"`
	Shipping       decimal.Decimal        `json:"shipping"`
	Discount       decimal.Decimal        `json:"discount"`
	Total          decimal.Decimal        `json:"total"`
	PaymentMethod  string                 `json:"payment_method"`
	PaymentStatus  string                 `json:"payment_status"`
	TrackingNumber string                 `json:"tracking_number,omitempty"`
	CustomerNotes  string                 `json:"customer_notes,omitempty"`
	AdminNotes     string                 `json:"admin_notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// ListItemResponse represents an order in list API responses
type ListItemResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	CustomerName  string          `json:"customer_name"`
	CustomerPhone string          `json:"customer_phone"`
	ItemCount     int             `json:"item_count"`
	Total         decimal.Decimal `json:"total"`
	Status        string          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToResponse converts an order to its API representation
func ToResponse(o *order.Order) Response {
	items := make([]ItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = ItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Total:     item.Total,
		}
	}

	return Response{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		Customer:       toCustomerResponse(o.Customer),
		Items:          items,
		Status:         string(o.Status),
		StatusHistory:  ToTimelineResponses(o.Timeline()),
		Subtotal:       o.Subtotal,
		Tax:            o.Tax,
		Shipping:       o.Shipping,
		Discount:       o.Discount,
		Total:          o.Total,
		PaymentMethod:  string(o.PaymentMethod),
		PaymentStatus:  string(o.PaymentStatus),
		TrackingNumber: o.TrackingNumber,
		CustomerNotes:  o.CustomerNotes,
		AdminNotes:     o.AdminNotes,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

// ToListItemResponse converts an order to its list representation
func ToListItemResponse(o *order.Order) ListItemResponse {
	return ListItemResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.Customer.Name,
		CustomerPhone: o.Customer.Phone,
		ItemCount:     o.ItemCount(),
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}
}

// ToListItemResponses converts a list of orders
func ToListItemResponses(orders []order.Order) []ListItemResponse {
	responses := make([]ListItemResponse, len(orders))
	for i := range orders {
		responses[i] = ToListItemResponse(&orders[i])
	}
	return responses
}

// ToTimelineResponses converts a status history slice
func ToTimelineResponses(changes []order.StatusChange) []StatusChangeResponse {
	responses := make([]StatusChangeResponse, len(changes))
	for i, c := range changes {
		responses[i] = StatusChangeResponse{
			Status:    string(c.Status),
			Timestamp: c.Timestamp,
			UpdatedBy: c.UpdatedBy,
			Notes:     c.Notes,
		}
	}
	return responses
}

func toCustomerResponse(c order.CustomerSnapshot) CustomerResponse {
	return CustomerResponse{
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address.Combined(),
	}
}
