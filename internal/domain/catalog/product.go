package catalog

import (
	"strings"
	"time"

	"github.com/judn/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category is the product category
type Category string

const (
	CategoryShirts      Category = "shirts"
	CategoryPants       Category = "pants"
	CategoryDresses     Category = "dresses"
	CategoryAccessories Category = "accessories"
	CategoryShoes       Category = "shoes"
	CategoryBags        Category = "bags"
)

// IsValid checks if the category is one of the known categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryShirts, CategoryPants, CategoryDresses, CategoryAccessories, CategoryShoes, CategoryBags:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// AllCategories returns every product category
func AllCategories() []Category {
	return []Category{CategoryShirts, CategoryPants, CategoryDresses, CategoryAccessories, CategoryShoes, CategoryBags}
}

// StockStatus is derived from the stock level, never stored
type StockStatus string

const (
	StockInStock    StockStatus = "in_stock"
	StockLowStock   StockStatus = "low_stock"
	StockOutOfStock StockStatus = "out_of_stock"
)

// LowStockThreshold is the stock level at or below which a product is
// flagged as low stock
const LowStockThreshold = 5

// validSizes are the supported garment sizes
var validSizes = map[string]bool{
	"XS": true, "S": true, "M": true, "L": true,
	"XL": true, "XXL": true, "XXXL": true,
}

// Color is a product color option
type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Image is a product image reference
type Image struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Primary bool   `json:"primary"`
}

// Product is the aggregate root for catalog items
type Product struct {
	shared.AuditedAggregateRoot
	SKU              string // unique, immutable after creation
	Name             string
	Description      string
	ShortDescription string
	Category         Category
	Brand            string
	Price            decimal.Decimal
	OriginalPrice    decimal.Decimal // zero when the product was never marked down
	Sizes            []string
	Colors           []Color
	Images           []Image
	Tags             []string
	FabricMaterial   string
	StockLevel       int
	Available        bool
	Featured         bool
}

// NewProduct creates a new available product. An empty SKU generates one.
func NewProduct(sku, name, description string, category Category, brand string, price decimal.Decimal) (*Product, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	if strings.TrimSpace(brand) == "" {
		return nil, shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		sku = NewSKU()
	}

	product := &Product{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(),
		SKU:                  sku,
		Name:                 strings.TrimSpace(name),
		Description:          description,
		Category:             category,
		Brand:                strings.TrimSpace(brand),
		Price:                price,
		OriginalPrice:        decimal.Zero,
		Available:            true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's basic information. The SKU never changes.
func (p *Product) Update(name, description, shortDescription string, category Category, brand string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := validateDescription(description); err != nil {
		return err
	}
	if len(shortDescription) > 200 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Short description cannot exceed 200 characters")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	if strings.TrimSpace(brand) == "" {
		return shared.NewDomainError("INVALID_BRAND", "Brand cannot be empty")
	}

	p.Name = strings.TrimSpace(name)
	p.Description = description
	p.ShortDescription = shortDescription
	p.Category = category
	p.Brand = strings.TrimSpace(brand)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductUpdatedEvent(p))

	return nil
}

// SetPrice updates the selling price. Setting a price below an existing
// original price puts the product on sale.
func (p *Product) SetPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	old := p.Price
	p.Price = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductPriceChangedEvent(p, old))

	return nil
}

// SetOriginalPrice records the pre-markdown price. Zero clears it.
func (p *Product) SetOriginalPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Original price cannot be negative")
	}

	p.OriginalPrice = price
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetSizes replaces the size options
func (p *Product) SetSizes(sizes []string) error {
	cleaned := make([]string, 0, len(sizes))
	for _, s := range sizes {
		s = strings.ToUpper(strings.TrimSpace(s))
		if !validSizes[s] {
			return shared.NewDomainError("INVALID_SIZE", "Unknown size option: "+s)
		}
		cleaned = append(cleaned, s)
	}

	p.Sizes = cleaned
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetColors replaces the color options
func (p *Product) SetColors(colors []Color) {
	p.Colors = colors
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetImages replaces the product images. The first image becomes primary
// when none is marked.
func (p *Product) SetImages(images []Image) error {
	hasPrimary := false
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot be empty")
		}
		if img.Primary {
			hasPrimary = true
		}
	}
	if len(images) > 0 && !hasPrimary {
		images[0].Primary = true
	}

	p.Images = images
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// SetTags replaces the search tags
func (p *Product) SetTags(tags []string) {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	p.Tags = cleaned
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetFabricMaterial sets the fabric or material description
func (p *Product) SetFabricMaterial(material string) {
	p.FabricMaterial = strings.TrimSpace(material)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetStockLevel replaces the stock level
func (p *Product) SetStockLevel(level int) error {
	if level < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock level cannot be negative")
	}

	old := p.StockLevel
	p.StockLevel = level
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductStockChangedEvent(p, old))

	return nil
}

// AdjustStock changes the stock level by delta, rejecting adjustments
// that would take it negative
func (p *Product) AdjustStock(delta int) error {
	return p.SetStockLevel(p.StockLevel + delta)
}

// SetAvailability toggles whether the product shows on the storefront
func (p *Product) SetAvailability(available bool) {
	p.Available = available
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// SetFeatured toggles the featured flag
func (p *Product) SetFeatured(featured bool) {
	p.Featured = featured
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}

// IsOnSale returns true when an original price above the current price
// is recorded
func (p *Product) IsOnSale() bool {
	return p.OriginalPrice.GreaterThan(decimal.Zero) && p.OriginalPrice.GreaterThan(p.Price)
}

// DiscountPercent returns the markdown as a percentage of the original
// price. Returns 0 when the product is not on sale.
func (p *Product) DiscountPercent() decimal.Decimal {
	if !p.IsOnSale() {
		return decimal.Zero
	}
	diff := p.OriginalPrice.Sub(p.Price)
	return diff.Div(p.OriginalPrice).Mul(decimal.NewFromInt(100)).Round(0)
}

// StockStatus derives the display stock status from the stock level
func (p *Product) StockStatus() StockStatus {
	switch {
	case p.StockLevel == 0:
		return StockOutOfStock
	case p.StockLevel <= LowStockThreshold:
		return StockLowStock
	default:
		return StockInStock
	}
}

// InStock returns true when at least one unit is available
func (p *Product) InStock() bool {
	return p.StockLevel > 0
}

// PrimaryImage returns the primary image URL, or empty when there are
// no images
func (p *Product) PrimaryImage() string {
	for _, img := range p.Images {
		if img.Primary {
			return img.URL
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 100 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Product description cannot be empty")
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	return nil
}
