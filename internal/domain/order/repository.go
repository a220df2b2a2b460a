package order

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/judn/backend/internal/domain/shared"
)

// SalesSummary aggregates revenue over orders that count toward sales
type SalesSummary struct {
	OrderCount int64
	TotalSales decimal.Decimal
}

// DailySales is one day's revenue bucket
type DailySales struct {
	Date       time.Time
	OrderCount int64
	TotalSales decimal.Decimal
}

// Repository defines persistence operations for orders.
// Orders are never hard-deleted; there is deliberately no Delete method.
type Repository interface {
	// FindByID finds an order by its storage ID, including items and history
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByOrderNumber finds an order by its public JUDN-xxx number
	FindByOrderNumber(ctx context.Context, orderNumber string) (*Order, error)

	// FindAll returns orders matching the filter, newest first by default
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// Count returns the number of orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// FindRecent returns the most recently created orders
	FindRecent(ctx context.Context, limit int) ([]Order, error)

	// FindByDateRange returns orders created within [start, end]
	FindByDateRange(ctx context.Context, start, end time.Time, filter shared.Filter) ([]Order, error)

	// CountByStatus returns the number of orders per status
	CountByStatus(ctx context.Context) (map[Status]int64, error)

	// SummarizeSales aggregates count and revenue over orders whose status
	// counts toward sales, optionally bounded by a creation date range
	SummarizeSales(ctx context.Context, start, end *time.Time) (*SalesSummary, error)

	// SalesByDay buckets sales-counting orders by creation day within
	// [start, end], oldest first. Days with no orders are omitted.
	SalesByDay(ctx context.Context, start, end time.Time) ([]DailySales, error)

	// Save persists a new or updated order together with its items and
	// status history. A stale aggregate version fails with
	// shared.ErrConcurrencyConflict and writes nothing.
	Save(ctx context.Context, o *Order) error
}
