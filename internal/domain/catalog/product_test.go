package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	p, err := NewProduct("", "Classic Oxford Shirt", "A breathable cotton oxford shirt.", CategoryShirts, "JUDN", decimal.NewFromInt(1200))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	p := createTestProduct(t)

	assert.True(t, IsGeneratedSKU(p.SKU), p.SKU)
	assert.True(t, p.Available)
	assert.False(t, p.Featured)
	assert.Equal(t, StockOutOfStock, p.StockStatus())
	assert.Len(t, p.GetDomainEvents(), 1)
}

func TestNewProduct_KeepsProvidedSKU(t *testing.T) {
	p, err := NewProduct("shirt-001", "Shirt", "A shirt.", CategoryShirts, "JUDN", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, "SHIRT-001", p.SKU)
}

func TestNewProduct_Validation(t *testing.T) {
	tests := []struct {
		name        string
		productName string
		description string
		category    Category
		brand       string
		price       decimal.Decimal
	}{
		{"empty name", "", "desc", CategoryShirts, "JUDN", decimal.NewFromInt(1)},
		{"name too long", string(make([]byte, 101)), "desc", CategoryShirts, "JUDN", decimal.NewFromInt(1)},
		{"empty description", "Shirt", "", CategoryShirts, "JUDN", decimal.NewFromInt(1)},
		{"bad category", "Shirt", "desc", Category("toys"), "JUDN", decimal.NewFromInt(1)},
		{"empty brand", "Shirt", "desc", CategoryShirts, "", decimal.NewFromInt(1)},
		{"negative price", "Shirt", "desc", CategoryShirts, "JUDN", decimal.NewFromInt(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProduct("", tt.productName, tt.description, tt.category, tt.brand, tt.price)
			assert.Error(t, err)
		})
	}
}

func TestProduct_SaleDerivation(t *testing.T) {
	p := createTestProduct(t)

	assert.False(t, p.IsOnSale(), "no original price recorded")
	assert.True(t, p.DiscountPercent().IsZero())

	require.NoError(t, p.SetOriginalPrice(decimal.NewFromInt(1600)))
	assert.True(t, p.IsOnSale())
	assert.True(t, p.DiscountPercent().Equal(decimal.NewFromInt(25)), "got %s", p.DiscountPercent())

	// original price at or below current price is not a sale
	require.NoError(t, p.SetPrice(decimal.NewFromInt(1600)))
	assert.False(t, p.IsOnSale())
	assert.True(t, p.DiscountPercent().IsZero())
}

func TestProduct_StockStatus(t *testing.T) {
	tests := []struct {
		level  int
		status StockStatus
	}{
		{0, StockOutOfStock},
		{1, StockLowStock},
		{5, StockLowStock},
		{6, StockInStock},
		{500, StockInStock},
	}

	p := createTestProduct(t)
	for _, tt := range tests {
		require.NoError(t, p.SetStockLevel(tt.level))
		assert.Equal(t, tt.status, p.StockStatus(), "level %d", tt.level)
	}
}

func TestProduct_AdjustStock(t *testing.T) {
	p := createTestProduct(t)
	require.NoError(t, p.SetStockLevel(10))

	require.NoError(t, p.AdjustStock(-3))
	assert.Equal(t, 7, p.StockLevel)

	err := p.AdjustStock(-8)
	assert.Error(t, err, "stock cannot go negative")
	assert.Equal(t, 7, p.StockLevel)
}

func TestProduct_SetSizes(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.SetSizes([]string{"s", " M ", "XXL"}))
	assert.Equal(t, []string{"S", "M", "XXL"}, p.Sizes)

	assert.Error(t, p.SetSizes([]string{"XXXXL"}))
}

func TestProduct_SetImages_PrimaryDefaulting(t *testing.T) {
	p := createTestProduct(t)

	require.NoError(t, p.SetImages([]Image{
		{URL: "https://cdn.judn.example/a.jpg"},
		{URL: "https://cdn.judn.example/b.jpg"},
	}))
	assert.Equal(t, "https://cdn.judn.example/a.jpg", p.PrimaryImage())

	require.NoError(t, p.SetImages([]Image{
		{URL: "https://cdn.judn.example/a.jpg"},
		{URL: "https://cdn.judn.example/b.jpg", Primary: true},
	}))
	assert.Equal(t, "https://cdn.judn.example/b.jpg", p.PrimaryImage())

	assert.Error(t, p.SetImages([]Image{{URL: " "}}))
}

func TestProduct_UpdateBumpsVersion(t *testing.T) {
	p := createTestProduct(t)
	v := p.GetVersion()

	require.NoError(t, p.Update("Updated Shirt", "Still a shirt.", "Short.", CategoryShirts, "JUDN"))
	assert.Equal(t, v+1, p.GetVersion())
	assert.Equal(t, "Updated Shirt", p.Name)
}

func TestNewSKU_Format(t *testing.T) {
	for i := 0; i < 20; i++ {
		sku := NewSKU()
		assert.True(t, IsGeneratedSKU(sku), sku)
	}
}
