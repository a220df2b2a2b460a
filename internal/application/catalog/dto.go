package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ColorInput is a color option in requests
type ColorInput struct {
	Name string `json:"name" binding:"required"`
	Hex  string `json:"hex"`
}

// ImageInput is an image reference in requests
type ImageInput struct {
	URL     string `json:"url" binding:"required,url"`
	Alt     string `json:"alt"`
	Primary bool   `json:"primary"`
}

// CreateRequest represents a request to create a product
type CreateRequest struct {
	SKU              string           `json:"sku" binding:"omitempty,max=50"`
	Name             string           `json:"name" binding:"required,max=100"`
	Description      string           `json:"description" binding:"required,max=500"`
	ShortDescription string           `json:"short_description" binding:"omitempty,max=200"`
	Category         string           `json:"category" binding:"required"`
	Brand            string           `json:"brand" binding:"required"`
	Price            decimal.Decimal  `json:"price" binding:"required"`
	OriginalPrice    *decimal.Decimal `json:"original_price"`
	Sizes            []string         `json:"sizes"`
	Colors           []ColorInput     `json:"colors"`
	Images           []ImageInput     `json:"images"`
	Tags             []string         `json:"tags"`
	FabricMaterial   string           `json:"fabric_material"`
	StockLevel       int              `json:"stock_level" binding:"min=0"`
	Featured         bool             `json:"featured"`
}

// UpdateRequest represents a request to update a product
type UpdateRequest struct {
	Name             *string          `json:"name" binding:"omitempty,max=100"`
	Description      *string          `json:"description" binding:"omitempty,max=500"`
	ShortDescription *string          `json:"short_description" binding:"omitempty,max=200"`
	Category         *string          `json:"category"`
	Brand            *string          `json:"brand"`
	Price            *decimal.Decimal `json:"price"`
	OriginalPrice    *decimal.Decimal `json:"original_price"`
	Sizes            []string         `json:"sizes"`
	Colors           []ColorInput     `json:"colors"`
	Images           []ImageInput     `json:"images"`
	Tags             []string         `json:"tags"`
	FabricMaterial   *string          `json:"fabric_material"`
	StockLevel       *int             `json:"stock_level" binding:"omitempty,min=0"`
	Available        *bool            `json:"available"`
	Featured         *bool            `json:"featured"`
}

// ListFilter represents filter options for the product list
type ListFilter struct {
	Search    string  `form:"search"`
	Category  *string `form:"category"`
	Available *bool   `form:"available"`
	Featured  *bool   `form:"featured"`
	OnSale    *bool   `form:"on_sale"`
	LowStock  *bool   `form:"low_stock"`
	Page      int     `form:"page"`
	PageSize  int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string  `form:"order_by"`
	OrderDir  string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ColorResponse is a color option in API responses
type ColorResponse struct {
	Name string `json:"name"`
	Hex  string `json:"hex,omitempty"`
}

// ImageResponse is an image reference in API responses
type ImageResponse struct {
	URL     string `json:"url"`
	Alt     string `json:"alt,omitempty"`
	Primary bool   `json:"primary"`
}

// Response represents a product in API responses
type Response struct {
	ID               uuid.UUID        `json:"id"`
	SKU              string           `json:"sku"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	ShortDescription string           `json:"short_description,omitempty"`
	Category         string           `json:"category"`
	Brand            string           `json:"brand"`
	Price            decimal.Decimal  `json:"price"`
	OriginalPrice    *decimal.Decimal `json:"original_price,omitempty"`
	OnSale           bool             `json:"on_sale"`
	DiscountPercent  decimal.Decimal  `json:"discount_percent"`
	Sizes            []string         `json:"sizes"`
	Colors           []ColorResponse  `json:"colors"`
	Images           []ImageResponse  `json:"images"`
	Tags             []string         `json:"tags"`
	FabricMaterial   string           `json:"fabric_material,omitempty"`
	StockLevel       int              `json:"stock_level"`
	StockStatus      string           `json:"stock_status"`
	Available        bool             `json:"available"`
	Featured         bool             `json:"featured"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// ToResponse converts a product to its API representation
func ToResponse(p *catalog.Product) Response {
	colors := make([]ColorResponse, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = ColorResponse{Name: c.Name, Hex: c.Hex}
	}
	images := make([]ImageResponse, len(p.Images))
	for i, img := range p.Images {
		images[i] = ImageResponse{URL: img.URL, Alt: img.Alt, Primary: img.Primary}
	}

	resp := Response{
		ID:               p.ID,
		SKU:              p.SKU,
		Name:             p.Name,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Category:         string(p.Category),
		Brand:            p.Brand,
		Price:            p.Price,
		OnSale:           p.IsOnSale(),
		DiscountPercent:  p.DiscountPercent(),
		Sizes:            p.Sizes,
		Colors:           colors,
		Images:           images,
		Tags:             p.Tags,
		FabricMaterial:   p.FabricMaterial,
		StockLevel:       p.StockLevel,
		StockStatus:      string(p.StockStatus()),
		Available:        p.Available,
		Featured:         p.Featured,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
	if p.OriginalPrice.GreaterThan(decimal.Zero) {
		op := p.OriginalPrice
		resp.OriginalPrice = &op
	}
	return resp
}

// ToResponses converts a list of products
func ToResponses(products []*catalog.Product) []Response {
	responses := make([]Response, len(products))
	for i, p := range products {
		responses[i] = ToResponse(p)
	}
	return responses
}
