package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of order.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	args := m.Called(ctx, orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) FindRecent(ctx context.Context, limit int) ([]order.Order, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]order.Order, error) {
	args := m.Called(ctx, start, end, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockRepository) CountByStatus(ctx context.Context) (map[order.Status]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[order.Status]int64), args.Error(1)
}

func (m *MockRepository) SummarizeSales(ctx context.Context, start, end *time.Time) (*order.SalesSummary, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesSummary), args.Error(1)
}

func (m *MockRepository) SalesByDay(ctx context.Context, start, end time.Time) ([]order.DailySales, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.DailySales), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func createTestOrder(t *testing.T) *order.Order {
	o, err := order.New(order.CustomerSnapshot{
		Name:  "Rahim Uddin",
		Phone: "01712345678",
	}, order.PaymentCashOnDelivery)
	require.NoError(t, err)
	_, err = o.AddItem(nil, "Shirt", decimal.NewFromInt(500), 2, "M", "black")
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestService_UpdateStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	o := createTestOrder(t)
	actorID := uuid.New()

	mockRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	mockRepo.On("Save", mock.Anything, o).Return(nil)

	resp, err := service.UpdateStatus(context.Background(), o.ID, actorID, UpdateStatusRequest{
		Status: "confirmed",
		Notes:  "phone confirmed",
	})

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, resp.StatusHistory, 2)
	assert.Equal(t, "confirmed", resp.StatusHistory[1].Status)
	assert.Equal(t, actorID, *resp.StatusHistory[1].UpdatedBy)
	mockRepo.AssertExpectations(t)
}

func TestService_UpdateStatus_InvalidStatusNotSaved(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	o := createTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	_, err := service.UpdateStatus(context.Background(), o.ID, uuid.New(), UpdateStatusRequest{
		Status: "misplaced",
	})

	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestService_UpdateStatus_ConflictPropagates(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	o := createTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	mockRepo.On("Save", mock.Anything, o).Return(shared.ErrConcurrencyConflict)

	_, err := service.UpdateStatus(context.Background(), o.ID, uuid.New(), UpdateStatusRequest{
		Status: "shipped",
	})

	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestService_Update_RecomputesTotalFromCharges(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	o := createTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	mockRepo.On("Save", mock.Anything, o).Return(nil)

	shipping := decimal.NewFromInt(120)
	discount := decimal.NewFromInt(100)
	resp, err := service.Update(context.Background(), o.ID, uuid.New(), UpdateRequest{
		Shipping: &shipping,
		Discount: &discount,
	})

	require.NoError(t, err)
	// 1000 + 0 + 120 - 100
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(1020)), "total %s", resp.Total)
}

func TestService_Update_PaymentStatus(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	o := createTestOrder(t)
	mockRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	mockRepo.On("Save", mock.Anything, o).Return(nil)

	paid := "paid"
	resp, err := service.Update(context.Background(), o.ID, uuid.New(), UpdateRequest{
		PaymentStatus: &paid,
	})

	require.NoError(t, err)
	assert.Equal(t, "paid", resp.PaymentStatus)

	bad := "settled"
	_, err = service.Update(context.Background(), o.ID, uuid.New(), UpdateRequest{
		PaymentStatus: &bad,
	})
	assert.Error(t, err)
}

func TestService_GetByOrderNumber_NotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	notFound := errors.New("order not found")
	mockRepo.On("FindByOrderNumber", mock.Anything, "JUDN-NOPE-AAAAA").Return(nil, notFound)

	_, err := service.GetByOrderNumber(context.Background(), "JUDN-NOPE-AAAAA")
	assert.ErrorIs(t, err, notFound)
}

func TestService_List_AppliesDefaults(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	var captured shared.Filter
	mockRepo.On("FindAll", mock.Anything, mock.MatchedBy(func(f shared.Filter) bool {
		captured = f
		return true
	})).Return([]order.Order{}, nil)
	mockRepo.On("Count", mock.Anything, mock.Anything).Return(int64(0), nil)

	status := "pending"
	_, _, err := service.List(context.Background(), ListFilter{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.PageSize)
	assert.Equal(t, "created_at", captured.OrderBy)
	assert.Equal(t, "pending", captured.Filters["status"])
}

func TestService_Timeline(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo)

	o := createTestOrder(t)
	require.NoError(t, o.SetStatus(order.StatusConfirmed, nil, ""))
	mockRepo.On("FindByID", mock.Anything, o.ID).Return(o, nil)

	timeline, err := service.Timeline(context.Background(), o.ID)

	require.NoError(t, err)
	require.Len(t, timeline, 2)
	assert.Equal(t, "pending", timeline[0].Status)
	assert.Equal(t, "confirmed", timeline[1].Status)
}
