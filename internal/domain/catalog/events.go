package catalog

import (
	"github.com/judn/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

const (
	EventTypeProductCreated      = "catalog.product.created"
	EventTypeProductUpdated      = "catalog.product.updated"
	EventTypeProductPriceChanged = "catalog.product.price_changed"
	EventTypeProductStockChanged = "catalog.product.stock_changed"
)

// ProductCreatedEvent is published when a product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, "Product", p.ID),
		SKU:             p.SKU,
		Name:            p.Name,
		Category:        p.Category,
		Price:           p.Price,
	}
}

// ProductUpdatedEvent is published when product information changes
type ProductUpdatedEvent struct {
	shared.BaseDomainEvent
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

// NewProductUpdatedEvent creates a new ProductUpdatedEvent
func NewProductUpdatedEvent(p *Product) *ProductUpdatedEvent {
	return &ProductUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductUpdated, "Product", p.ID),
		SKU:             p.SKU,
		Name:            p.Name,
	}
}

// ProductPriceChangedEvent is published when the selling price changes
type ProductPriceChangedEvent struct {
	shared.BaseDomainEvent
	SKU      string          `json:"sku"`
	OldPrice decimal.Decimal `json:"old_price"`
	NewPrice decimal.Decimal `json:"new_price"`
}

// NewProductPriceChangedEvent creates a new ProductPriceChangedEvent
func NewProductPriceChangedEvent(p *Product, oldPrice decimal.Decimal) *ProductPriceChangedEvent {
	return &ProductPriceChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductPriceChanged, "Product", p.ID),
		SKU:             p.SKU,
		OldPrice:        oldPrice,
		NewPrice:        p.Price,
	}
}

// ProductStockChangedEvent is published when the stock level changes
type ProductStockChangedEvent struct {
	shared.BaseDomainEvent
	SKU      string      `json:"sku"`
	OldLevel int         `json:"old_level"`
	NewLevel int         `json:"new_level"`
	Status   StockStatus `json:"status"`
}

// NewProductStockChangedEvent creates a new ProductStockChangedEvent
func NewProductStockChangedEvent(p *Product, oldLevel int) *ProductStockChangedEvent {
	return &ProductStockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductStockChanged, "Product", p.ID),
		SKU:             p.SKU,
		OldLevel:        oldLevel,
		NewLevel:        p.StockLevel,
		Status:          p.StockStatus(),
	}
}
