package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of catalog.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestService_Create(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)

	original := decimal.NewFromInt(1600)
	resp, err := service.Create(context.Background(), uuid.New(), CreateRequest{
		Name:          "Classic Oxford Shirt",
		Description:   "A breathable cotton oxford shirt.",
		Category:      "shirts",
		Brand:         "JUDN",
		Price:         decimal.NewFromInt(1200),
		OriginalPrice: &original,
		Sizes:         []string{"M", "L"},
		StockLevel:    30,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.SKU, "SKU generated when omitted")
	assert.True(t, resp.OnSale)
	assert.True(t, resp.DiscountPercent.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, "in_stock", resp.StockStatus)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "ExistsBySKU", mock.Anything, mock.Anything)
}

func TestService_Create_DuplicateSKU(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	mockRepo.On("ExistsBySKU", mock.Anything, "SHIRT-001").Return(true, nil)

	_, err := service.Create(context.Background(), uuid.New(), CreateRequest{
		SKU:         "SHIRT-001",
		Name:        "Shirt",
		Description: "A shirt.",
		Category:    "shirts",
		Brand:       "JUDN",
		Price:       decimal.NewFromInt(100),
	})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_Update_PartialFields(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	product, err := catalog.NewProduct("", "Shirt", "A shirt.", catalog.CategoryShirts, "JUDN", decimal.NewFromInt(100))
	require.NoError(t, err)

	mockRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
	mockRepo.On("Save", mock.Anything, product).Return(nil)

	newPrice := decimal.NewFromInt(90)
	available := false
	resp, err := service.Update(context.Background(), product.ID, uuid.New(), UpdateRequest{
		Price:     &newPrice,
		Available: &available,
	})

	require.NoError(t, err)
	assert.True(t, resp.Price.Equal(newPrice))
	assert.False(t, resp.Available)
	assert.Equal(t, "Shirt", resp.Name, "untouched fields survive")
}

func TestService_AdjustStock_FailsBelowZero(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	product, err := catalog.NewProduct("", "Shirt", "A shirt.", catalog.CategoryShirts, "JUDN", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, product.SetStockLevel(2))

	mockRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)

	_, err = service.AdjustStock(context.Background(), product.ID, uuid.New(), -5)

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_List_LowStockFilter(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	var captured catalog.ProductFilter
	mockRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		captured = f
		return true
	})).Return([]*catalog.Product{}, nil)
	mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	lowStock := true
	_, _, err := service.List(context.Background(), ListFilter{LowStock: &lowStock})

	require.NoError(t, err)
	require.NotNil(t, captured.MaxStockLevel)
	assert.Equal(t, catalog.LowStockThreshold, *captured.MaxStockLevel)
}
