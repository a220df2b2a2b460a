package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/catalog"
	"github.com/judn/backend/internal/domain/crm"
	"github.com/judn/backend/internal/domain/marketing"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) FindRecent(ctx context.Context, limit int) ([]order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, start, end, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int64), args.Error(1)
}

func (m *MockOrderRepository) SummarizeSales(ctx context.Context, start, end *time.Time) (*order.SalesSummary, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesSummary), args.Error(1)
}

func (m *MockOrderRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]order.DailySales, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.DailySales), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*crm.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByPhone(ctx context.Context, phone string) (*crm.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAll(ctx context.Context, filter crm.CustomerFilter) ([]*crm.Customer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Count(ctx context.Context, filter crm.CustomerFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) FindTopSpenders(ctx context.Context, limit int) ([]*crm.Customer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*crm.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountByStatus(ctx context.Context) (map[crm.CustomerStatus]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[crm.CustomerStatus]int64), args.Error(1)
}

func (m *MockCustomerRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *crm.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	args := m.Called(ctx, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter catalog.ProductFilter) ([]*catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context, filter catalog.ProductFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	args := m.Called(ctx, sku)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) FindByID(ctx context.Context, id uuid.UUID) (*marketing.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*marketing.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) FindAll(ctx context.Context, filter marketing.CampaignFilter) ([]*marketing.Campaign, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*marketing.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) Count(ctx context.Context, filter marketing.CampaignFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCampaignRepository) FindRunning(ctx context.Context, now time.Time) ([]*marketing.Campaign, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*marketing.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) StatsByPlatform(ctx context.Context) ([]marketing.PlatformStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]marketing.PlatformStats), args.Error(1)
}

func (m *MockCampaignRepository) Save(ctx context.Context, campaign *marketing.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService() (*Service, *MockOrderRepository, *MockCustomerRepository, *MockProductRepository, *MockCampaignRepository) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	productRepo := new(MockProductRepository)
	campaignRepo := new(MockCampaignRepository)
	svc := NewService(orderRepo, customerRepo, productRepo, campaignRepo, zap.NewNop())
	return svc, orderRepo, customerRepo, productRepo, campaignRepo
}

func TestDashboard(t *testing.T) {
	svc, orderRepo, customerRepo, productRepo, campaignRepo := newTestService()

	recent, err := order.New(order.CustomerSnapshot{Name: "Nusrat", Phone: "01712345678"}, order.PaymentBkash)
	require.NoError(t, err)
	_, err = recent.AddItem(nil, "Linen Shirt", decimal.NewFromInt(1450), 1, "", "")
	require.NoError(t, err)

	orderRepo.On("CountByStatus", mock.Anything).Return(map[order.Status]int64{
		order.StatusPending:   4,
		order.StatusConfirmed: 3,
		order.StatusDelivered: 10,
		order.StatusCancelled: 2,
	}, nil)
	orderRepo.On("SummarizeSales", mock.Anything, (*time.Time)(nil), (*time.Time)(nil)).Return(&order.SalesSummary{
		OrderCount: 13,
		TotalSales: decimal.NewFromInt(45200),
	}, nil)
	orderRepo.On("FindRecent", mock.Anything, 5).Return([]order.Order{*recent}, nil)

	customerRepo.On("CountByStatus", mock.Anything).Return(map[crm.CustomerStatus]int64{
		crm.StatusLead:     7,
		crm.StatusCustomer: 12,
	}, nil)
	customerRepo.On("CountCreatedSince", mock.Anything, mock.Anything).Return(int64(5), nil)

	productRepo.On("Count", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		return f.MaxStockLevel == nil
	})).Return(int64(40), nil)
	productRepo.On("Count", mock.Anything, mock.MatchedBy(func(f catalog.ProductFilter) bool {
		return f.MaxStockLevel != nil && *f.MaxStockLevel == catalog.LowStockThreshold
	})).Return(int64(6), nil)

	campaignRepo.On("Count", mock.Anything, mock.Anything).Return(int64(8), nil)
	campaignRepo.On("FindRunning", mock.Anything, mock.Anything).Return([]*marketing.Campaign{{}, {}}, nil)

	stats, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(19), stats.Orders.Total)
	assert.Equal(t, int64(4), stats.Orders.ByStatus["pending"])
	assert.Equal(t, "45200", stats.Orders.TotalSales.String())
	assert.Equal(t, int64(13), stats.Orders.SalesCount)

	require.Len(t, stats.Recent, 1)
	assert.Equal(t, recent.OrderNumber, stats.Recent[0].OrderNumber)
	assert.Equal(t, "Nusrat", stats.Recent[0].CustomerName)

	assert.Equal(t, int64(19), stats.Customers.Total)
	assert.Equal(t, int64(5), stats.Customers.NewThisMonth)
	assert.Equal(t, int64(40), stats.Products.Total)
	assert.Equal(t, int64(6), stats.Products.LowStock)
	assert.Equal(t, int64(8), stats.Campaigns.Total)
	assert.Equal(t, int64(2), stats.Campaigns.Active)
}

func TestSalesTrends_PadsEmptyDays(t *testing.T) {
	svc, orderRepo, _, _, _ := newTestService()

	yesterday := time.Now().AddDate(0, 0, -1).Truncate(24 * time.Hour)
	orderRepo.On("SalesByDay", mock.Anything, mock.Anything, mock.Anything).Return([]order.DailySales{
		{Date: yesterday, OrderCount: 3, TotalSales: decimal.NewFromInt(5400)},
	}, nil)

	trends, err := svc.SalesTrends(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, trends.Days)
	require.Len(t, trends.Points, 7)

	var nonZero int
	for _, p := range trends.Points {
		if p.OrderCount > 0 {
			nonZero++
			assert.Equal(t, yesterday.Format("2006-01-02"), p.Date)
			assert.Equal(t, "5400", p.TotalSales.String())
		} else {
			assert.True(t, p.TotalSales.IsZero())
		}
	}
	assert.Equal(t, 1, nonZero)
}

func TestSalesTrends_DefaultWindow(t *testing.T) {
	svc, orderRepo, _, _, _ := newTestService()

	orderRepo.On("SalesByDay", mock.Anything, mock.Anything, mock.Anything).Return([]order.DailySales{}, nil)

	trends, err := svc.SalesTrends(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 30, trends.Days)
	assert.Len(t, trends.Points, 30)
}
