package crm

import (
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/crm"
	"github.com/shopspring/decimal"
)

// CreateRequest represents a request to create a customer
type CreateRequest struct {
	Name     string `json:"name" binding:"required,max=50"`
	Phone    string `json:"phone" binding:"required,min=10"`
	Email    string `json:"email" binding:"omitempty,email"`
	Interest string `json:"interest"`
	Platform string `json:"platform" binding:"required"`
	Notes    string `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateRequest represents a request to update a customer
type UpdateRequest struct {
	Name     *string  `json:"name" binding:"omitempty,max=50"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	Interest *string  `json:"interest"`
	Status   *string  `json:"status"`
	Notes    *string  `json:"notes" binding:"omitempty,max=1000"`
	Tags     []string `json:"tags"`
}

// FollowUpRequest schedules or clears a follow-up
type FollowUpRequest struct {
	Required bool       `json:"required"`
	Date     *time.Time `json:"date"`
	Notes    string     `json:"notes" binding:"omitempty,max=500"`
}

// ContactRequest records a customer interaction
type ContactRequest struct {
	Type    string `json:"type" binding:"required,oneof=call message email whatsapp"`
	Notes   string `json:"notes" binding:"omitempty,max=500"`
	Outcome string `json:"outcome" binding:"omitempty,oneof=positive neutral negative"`
}

// ListFilter represents filter options for the customer list
type ListFilter struct {
	Search   string  `form:"search"`
	Status   *string `form:"status"`
	Platform *string `form:"platform"`
	Interest *string `form:"interest"`
	FollowUp *bool   `form:"follow_up"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ContactResponse is one communication history entry
type ContactResponse struct {
	Date    time.Time `json:"date"`
	Type    string    `json:"type"`
	Notes   string    `json:"notes,omitempty"`
	Outcome string    `json:"outcome,omitempty"`
}

// Response represents a customer in API responses
type Response struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Phone              string            `json:"phone"`
	Email              string            `json:"email,omitempty"`
	Interest           string            `json:"interest"`
	Platform           string            `json:"platform"`
	Status             string            `json:"status"`
	Notes              string            `json:"notes,omitempty"`
	Tags               []string          `json:"tags"`
	TotalOrders        int               `json:"total_orders"`
	TotalSpent         decimal.Decimal   `json:"total_spent"`
	AverageOrderValue  decimal.Decimal   `json:"average_order_value"`
	LastOrderDate      *time.Time        `json:"last_order_date,omitempty"`
	DaysSinceLastOrder int               `json:"days_since_last_order"`
	FollowUpRequired   bool              `json:"follow_up_required"`
	FollowUpDate       *time.Time        `json:"follow_up_date,omitempty"`
	FollowUpNotes      string            `json:"follow_up_notes,omitempty"`
	History            []ContactResponse `json:"history,omitempty"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ToResponse converts a customer to its API representation
func ToResponse(c *crm.Customer) Response {
	history := make([]ContactResponse, len(c.History))
	for i, h := range c.History {
		history[i] = ContactResponse{
			Date:    h.Date,
			Type:    string(h.Type),
			Notes:   h.Notes,
			Outcome: h.Outcome,
		}
	}

	return Response{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		Interest:           string(c.Interest),
		Platform:           string(c.Platform),
		Status:             string(c.Status),
		Notes:              c.Notes,
		Tags:               c.Tags,
		TotalOrders:        c.TotalOrders,
		TotalSpent:         c.TotalSpent,
		AverageOrderValue:  c.Value(),
		LastOrderDate:      c.LastOrderDate,
		DaysSinceLastOrder: c.DaysSinceLastOrder(),
		FollowUpRequired:   c.FollowUpRequired,
		FollowUpDate:       c.FollowUpDate,
		FollowUpNotes:      c.FollowUpNotes,
		History:            history,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// ToResponses converts a list of customers
func ToResponses(customers []*crm.Customer) []Response {
	responses := make([]Response, len(customers))
	for i, c := range customers {
		responses[i] = ToResponse(c)
	}
	return responses
}
