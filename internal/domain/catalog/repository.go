package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/shared"
)

// ProductFilter narrows product queries
type ProductFilter struct {
	shared.Filter
	Category      *Category
	Available     *bool
	Featured      *bool
	OnSale        *bool
	Search        string // matches name, brand and tags
	MaxStockLevel *int   // for low stock queries
}

// Repository is the persistence interface for products
type Repository interface {
	// FindByID finds a product by its id
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its unique SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindAll returns products matching the filter
	FindAll(ctx context.Context, filter ProductFilter) ([]*Product, error)

	// Count returns the number of products matching the filter
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// ExistsBySKU reports whether a product with the SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// Save persists the product. A stale version returns
	// shared.ErrConcurrencyConflict.
	Save(ctx context.Context, product *Product) error

	// Delete removes the product
	Delete(ctx context.Context, id uuid.UUID) error
}
