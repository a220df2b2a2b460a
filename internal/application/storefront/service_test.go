package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/crm"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/judn/backend/internal/infrastructure/cache"
	"github.com/judn/backend/internal/infrastructure/config"
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

func testConfig() config.StorefrontConfig {
	return config.StorefrontConfig{
		WhatsAppNumber: "8801712345678",
		IdempotencyTTL: 24 * time.Hour,
		CartTTL:        72 * time.Hour,
	}
}

func newTestService(orderRepo *MockOrderRepository, customerRepo *MockCustomerRepository) (*Service, cache.IdempotencyStore, cache.CartStore) {
	idempotency := cache.NewInMemoryIdempotencyStore()
	carts := cache.NewInMemoryCartStore()
	svc := NewService(orderRepo, customerRepo, idempotency, carts, testConfig(), zap.NewNop())
	return svc, idempotency, carts
}

func validCheckout() CheckoutRequest {
	return CheckoutRequest{
		Items: []CheckoutItem{
			{Name: "Linen Shirt", Price: 1450, Quantity: 2, Size: "M", Color: "White"},
			{Name: "Tote Bag", Price: 900, Quantity: 1},
		},
		Customer: CheckoutCustomer{
			Name:   "Nusrat Jahan",
			Phone:  "01712345678",
			Email:  "Nusrat@Example.com",
			Street: "House 12, Road 5",
			City:   "Dhaka",
		},
		PaymentMethod: "bkash",
	}
}

func TestCheckout_PlacesPendingOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	var saved *order.Order
	orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		saved = o
		return o.Status == order.StatusPending && len(o.Items) == 2
	})).Return(nil)
	customerRepo.On("FindByPhone", mock.Anything, "01712345678").Return(nil, shared.ErrNotFound)
	customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	resp, err := svc.Checkout(context.Background(), validCheckout())
	require.NoError(t, err)

	// 2*1450 + 900, no tax or shipping on the public path
	assert.Equal(t, "3800", resp.Total.String())
	assert.Equal(t, "pending", resp.Status)
	assert.True(t, order.IsOrderNumber(resp.OrderNumber))
	assert.Contains(t, resp.WhatsAppLink, "https://wa.me/8801712345678?text=")
	assert.Contains(t, resp.WhatsAppLink, resp.OrderNumber)
	assert.False(t, resp.Replayed)

	require.NotNil(t, saved)
	assert.Equal(t, "nusrat@example.com", saved.Customer.Email)
	assert.Len(t, saved.Timeline(), 1)
}

func TestCheckout_UpsertsCustomerAsLeadConversion(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("FindByPhone", mock.Anything, "01712345678").Return(nil, shared.ErrNotFound)

	var savedCustomer *crm.Customer
	customerRepo.On("Save", mock.Anything, mock.MatchedBy(func(c *crm.Customer) bool {
		savedCustomer = c
		return true
	})).Return(nil)

	_, err := svc.Checkout(context.Background(), validCheckout())
	require.NoError(t, err)

	require.NotNil(t, savedCustomer)
	assert.Equal(t, crm.StatusCustomer, savedCustomer.Status)
	assert.Equal(t, 1, savedCustomer.TotalOrders)
	assert.Equal(t, "3800", savedCustomer.TotalSpent.String())
	assert.Equal(t, crm.PlatformWebsite, savedCustomer.Platform)
}

func TestCheckout_ExistingCustomerAccumulates(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	existing, err := crm.NewCustomer("Nusrat Jahan", "01712345678", crm.PlatformInstagram)
	require.NoError(t, err)
	existing.ClearDomainEvents()

	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("FindByPhone", mock.Anything, "01712345678").Return(existing, nil)
	customerRepo.On("Save", mock.Anything, existing).Return(nil)

	_, err = svc.Checkout(context.Background(), validCheckout())
	require.NoError(t, err)

	assert.Equal(t, 1, existing.TotalOrders)
	assert.Equal(t, crm.PlatformInstagram, existing.Platform)
}

func TestCheckout_ReplayReturnsOriginalOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	var placed *order.Order
	orderRepo.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
		placed = o
		return true
	})).Return(nil).Once()
	customerRepo.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	req := validCheckout()
	req.IdempotencyKey = "client-key-1"

	first, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)

	orderRepo.On("FindByOrderNumber", mock.Anything, placed.OrderNumber).Return(placed, nil)

	second, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)
	assert.True(t, second.Replayed)
	orderRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCheckout_ConcurrentDoubleClickPersistsOnce(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	// hold the claim winner inside Save until the loser has come back,
	// so the loser provably raced the persistence window
	saveGate := make(chan struct{})
	orderRepo.On("Save", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		<-saveGate
	}).Return(nil)
	customerRepo.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound).Maybe()
	customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()

	req := validCheckout()
	req.IdempotencyKey = "same-key-double-click"

	type outcome struct {
		resp *CheckoutResponse
		err  error
	}
	results := make(chan outcome, 2)
	for i := 0; i < 2; i++ {
		go func() {
			resp, err := svc.Checkout(context.Background(), req)
			results <- outcome{resp, err}
		}()
	}

	// exactly one submission claims the key; the other returns while the
	// winner is still blocked in Save
	loser := <-results
	require.Error(t, loser.err)
	assert.ErrorIs(t, loser.err, shared.ErrDuplicateSubmission)

	close(saveGate)
	winner := <-results
	require.NoError(t, winner.err)
	assert.False(t, winner.resp.Replayed)
	assert.True(t, order.IsOrderNumber(winner.resp.OrderNumber))

	orderRepo.AssertNumberOfCalls(t, "Save", 1)
}

func TestCheckout_SaveFailureReleasesClaim(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	orderRepo.On("Save", mock.Anything, mock.Anything).Return(assert.AnError).Once()
	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil).Once()
	customerRepo.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	req := validCheckout()
	req.IdempotencyKey = "retry-after-failure"

	_, err := svc.Checkout(context.Background(), req)
	require.Error(t, err)

	// the failed attempt must not poison the key for the retry
	resp, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.Replayed)
	orderRepo.AssertNumberOfCalls(t, "Save", 2)
}

func TestCheckout_ValidationFailures(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	tests := []struct {
		name   string
		mutate func(*CheckoutRequest)
	}{
		{"no items", func(r *CheckoutRequest) { r.Items = nil }},
		{"short name", func(r *CheckoutRequest) { r.Customer.Name = "N" }},
		{"bad phone", func(r *CheckoutRequest) { r.Customer.Phone = "0212345678" }},
		{"short address", func(r *CheckoutRequest) {
			r.Customer.Street = "H12"
			r.Customer.City = ""
		}},
		{"bad payment method", func(r *CheckoutRequest) { r.PaymentMethod = "bitcoin" }},
		{"zero quantity", func(r *CheckoutRequest) { r.Items[0].Quantity = 0 }},
		{"negative price", func(r *CheckoutRequest) { r.Items[0].Price = -5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCheckout()
			tt.mutate(&req)
			_, err := svc.Checkout(context.Background(), req)
			assert.Error(t, err)
		})
	}
	orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCheckout_ClearsCart(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, carts := newTestService(orderRepo, customerRepo)

	require.NoError(t, carts.Put(context.Background(), &cache.Cart{Key: "session-9"}, time.Hour))

	orderRepo.On("Save", mock.Anything, mock.Anything).Return(nil)
	customerRepo.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, shared.ErrNotFound)
	customerRepo.On("Save", mock.Anything, mock.Anything).Return(nil)

	req := validCheckout()
	req.CartKey = "session-9"
	_, err := svc.Checkout(context.Background(), req)
	require.NoError(t, err)

	_, found, err := carts.Get(context.Background(), "session-9")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLookupOrder(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	o, err := order.New(order.CustomerSnapshot{Name: "Nusrat", Phone: "01712345678"}, order.PaymentCashOnDelivery)
	require.NoError(t, err)

	orderRepo.On("FindByOrderNumber", mock.Anything, o.OrderNumber).Return(o, nil)

	resp, err := svc.LookupOrder(context.Background(), o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber, resp.OrderNumber)
	assert.Equal(t, "pending", resp.Status)
	assert.Len(t, resp.Timeline, 1)
}

func TestLookupOrder_RejectsNonOrderNumbers(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	_, err := svc.LookupOrder(context.Background(), "not-an-order")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	orderRepo.AssertNotCalled(t, "FindByOrderNumber", mock.Anything, mock.Anything)
}

func TestCartRoundTrip(t *testing.T) {
	orderRepo := new(MockOrderRepository)
	customerRepo := new(MockCustomerRepository)
	svc, _, _ := newTestService(orderRepo, customerRepo)

	saved, err := svc.SaveCart(context.Background(), "session-1", CartRequest{
		Lines: []CartLine{{Name: "Linen Shirt", UnitPrice: 1450, Quantity: 2, Size: "M"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "session-1", saved.Key)

	got, err := svc.GetCart(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 2, got.Lines[0].Quantity)

	_, err = svc.GetCart(context.Background(), "missing")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
