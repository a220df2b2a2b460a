package storefront

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/infrastructure/cache"
)

// CheckoutItem is one line of a checkout submission
type CheckoutItem struct {
	ProductID string  `json:"product_id,omitempty" binding:"omitempty,uuid"`
	Name      string  `json:"name" binding:"required,max=200"`
	Price     float64 `json:"price" binding:"required,gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// CheckoutCustomer is the shopper's contact block
type CheckoutCustomer struct {
	Name       string `json:"name" binding:"required,min=2,max=100"`
	Phone      string `json:"phone" binding:"required,min=10,max=20"`
	Email      string `json:"email,omitempty" binding:"omitempty,email"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
}

// CheckoutRequest is the public checkout payload
type CheckoutRequest struct {
	Items          []CheckoutItem   `json:"items" binding:"required,min=1,dive"`
	Customer       CheckoutCustomer `json:"customer" binding:"required"`
	PaymentMethod  string           `json:"payment_method" binding:"required"`
	Notes          string           `json:"notes,omitempty" binding:"omitempty,max=500"`
	IdempotencyKey string           `json:"-"` // from the Idempotency-Key header
	CartKey        string           `json:"cart_key,omitempty"`
}

// CheckoutResponse confirms a placed order
type CheckoutResponse struct {
	OrderNumber  string          `json:"order_number"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	WhatsAppLink string          `json:"whatsapp_link,omitempty"`
	Replayed     bool            `json:"replayed,omitempty"`
}

// OrderLookupResponse is the public view of an order, looked up by number.
// It exposes no admin fields.
type OrderLookupResponse struct {
	OrderNumber   string               `json:"order_number"`
	Status        string               `json:"status"`
	PaymentMethod string               `json:"payment_method"`
	Items         []OrderLookupItem    `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Shipping      decimal.Decimal      `json:"shipping"`
	Discount      decimal.Decimal      `json:"discount"`
	Total         decimal.Decimal      `json:"total"`
	Timeline      []OrderLookupHistory `json:"timeline"`
	CreatedAt     time.Time            `json:"created_at"`
}

// OrderLookupItem is one public line item
type OrderLookupItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
	Total     decimal.Decimal `json:"total"`
}

// OrderLookupHistory is one public status change, without actor or notes
type OrderLookupHistory struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// CartRequest saves a cart under a key
type CartRequest struct {
	Lines []CartLine `json:"lines" binding:"required,dive"`
}

// CartLine mirrors cache.CartLine with binding tags
type CartLine struct {
	ProductID string  `json:"product_id,omitempty" binding:"omitempty,uuid"`
	Name      string  `json:"name" binding:"required,max=200"`
	UnitPrice float64 `json:"unit_price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// CartResponse is a saved cart
type CartResponse struct {
	Key       string     `json:"key"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func toOrderLookupResponse(o *order.Order) OrderLookupResponse {
	items := make([]OrderLookupItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderLookupItem{
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Total:     item.Total,
		})
	}

	timeline := make([]OrderLookupHistory, 0, len(o.Timeline()))
	for _, change := range o.Timeline() {
		timeline = append(timeline, OrderLookupHistory{
			Status:    string(change.Status),
			Timestamp: change.Timestamp,
		})
	}

	return OrderLookupResponse{
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Items:         items,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		Shipping:      o.Shipping,
		Discount:      o.Discount,
		Total:         o.Total,
		Timeline:      timeline,
		CreatedAt:     o.CreatedAt,
	}
}

func toCartResponse(cart *cache.Cart) CartResponse {
	lines := make([]CartLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		price, _ := l.UnitPrice.Float64()
		lines = append(lines, CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: price,
			Quantity:  l.Quantity,
			Size:      l.Size,
			Color:     l.Color,
		})
	}
	return CartResponse{
		Key:       cart.Key,
		Lines:     lines,
		UpdatedAt: cart.UpdatedAt,
	}
}
