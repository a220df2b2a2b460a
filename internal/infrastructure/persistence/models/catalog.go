package models

import (
	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for products
type ProductModel struct {
	AuditedAggregateModel
	SKU              string          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Name             string          `gorm:"type:varchar(100);not null"`
	Description      string          `gorm:"type:text;not null"`
	ShortDescription string          `gorm:"type:varchar(200)"`
	Category         string          `gorm:"type:varchar(20);not null;index"`
	Brand            string          `gorm:"type:varchar(100);not null"`
	Price            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OriginalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Sizes            string          `gorm:"type:jsonb;default:'[]'"`
	Colors           string          `gorm:"type:jsonb;default:'[]'"`
	Images           string          `gorm:"type:jsonb;default:'[]'"`
	Tags             string          `gorm:"type:jsonb;default:'[]'"`
	FabricMaterial   string          `gorm:"type:varchar(100)"`
	StockLevel       int             `gorm:"not null;default:0"`
	Available        bool            `gorm:"not null;default:true;index"`
	Featured         bool            `gorm:"not null;default:false"`
}

// TableName specifies the table name for ProductModel
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts ProductModel to the domain Product
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		SKU:              m.SKU,
		Name:             m.Name,
		Description:      m.Description,
		ShortDescription: m.ShortDescription,
		Category:         catalog.Category(m.Category),
		Brand:            m.Brand,
		Price:            m.Price,
		OriginalPrice:    m.OriginalPrice,
		FabricMaterial:   m.FabricMaterial,
		StockLevel:       m.StockLevel,
		Available:        m.Available,
		Featured:         m.Featured,
	}
	m.PopulateAuditedAggregateRoot(&p.AuditedAggregateRoot)

	unmarshalJSON(m.Sizes, &p.Sizes)
	unmarshalJSON(m.Colors, &p.Colors)
	unmarshalJSON(m.Images, &p.Images)
	unmarshalJSON(m.Tags, &p.Tags)

	return p
}

// FromDomain populates ProductModel from the domain Product
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAuditedAggregateRoot(p.AuditedAggregateRoot)
	m.SKU = p.SKU
	m.Name = p.Name
	m.Description = p.Description
	m.ShortDescription = p.ShortDescription
	m.Category = string(p.Category)
	m.Brand = p.Brand
	m.Price = p.Price
	m.OriginalPrice = p.OriginalPrice
	m.Sizes = marshalJSON(p.Sizes, "[]")
	m.Colors = marshalJSON(p.Colors, "[]")
	m.Images = marshalJSON(p.Images, "[]")
	m.Tags = marshalJSON(p.Tags, "[]")
	m.FabricMaterial = p.FabricMaterial
	m.StockLevel = p.StockLevel
	m.Available = p.Available
	m.Featured = p.Featured
}
