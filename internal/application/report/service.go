package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/judn/backend/internal/domain/catalog"
	"github.com/judn/backend/internal/domain/crm"
	"github.com/judn/backend/internal/domain/marketing"
	"github.com/judn/backend/internal/domain/order"
	"github.com/judn/backend/internal/domain/shared"
)

const recentOrderCount = 5

// Service assembles the admin dashboard and sales reports from the
// domain repositories. It is read-only.
type Service struct {
	orderRepo    order.Repository
	customerRepo crm.Repository
	productRepo  catalog.Repository
	campaignRepo marketing.Repository
	logger       *zap.Logger
}

// NewService creates a new report Service
func NewService(orderRepo order.Repository, customerRepo crm.Repository, productRepo catalog.Repository, campaignRepo marketing.Repository, logger *zap.Logger) *Service {
	return &Service{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		campaignRepo: campaignRepo,
		logger:       logger,
	}
}

// Dashboard builds the landing-page summary. Sales revenue only counts
// orders in a confirmed-or-later, non-cancelled status.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{
		Orders: OrderStats{
			ByStatus:   make(map[string]int64),
			TotalSales: decimal.Zero,
		},
		Customers: CustomerStats{ByStatus: make(map[string]int64)},
		Recent:    make([]RecentOrder, 0, recentOrderCount),
	}

	byStatus, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for status, count := range byStatus {
		stats.Orders.ByStatus[string(status)] = count
		stats.Orders.Total += count
	}

	sales, err := s.orderRepo.SummarizeSales(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	stats.Orders.TotalSales = sales.TotalSales
	stats.Orders.SalesCount = sales.OrderCount

	recent, err := s.orderRepo.FindRecent(ctx, recentOrderCount)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		o := &recent[i]
		stats.Recent = append(stats.Recent, RecentOrder{
			OrderNumber:  o.OrderNumber,
			CustomerName: o.Customer.Name,
			Status:       string(o.Status),
			Total:        o.Total,
			CreatedAt:    o.CreatedAt,
		})
	}

	customersByStatus, err := s.customerRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	for status, count := range customersByStatus {
		stats.Customers.ByStatus[string(status)] = count
		stats.Customers.Total += count
	}

	monthStart := time.Now().AddDate(0, 0, -30)
	newCustomers, err := s.customerRepo.CountCreatedSince(ctx, monthStart)
	if err != nil {
		return nil, err
	}
	stats.Customers.NewThisMonth = newCustomers

	productTotal, err := s.productRepo.Count(ctx, catalog.ProductFilter{Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, err
	}
	stats.Products.Total = productTotal

	threshold := catalog.LowStockThreshold
	lowStock, err := s.productRepo.Count(ctx, catalog.ProductFilter{
		Filter:        shared.DefaultFilter(),
		MaxStockLevel: &threshold,
	})
	if err != nil {
		return nil, err
	}
	stats.Products.LowStock = lowStock

	campaignTotal, err := s.campaignRepo.Count(ctx, marketing.CampaignFilter{Filter: shared.DefaultFilter()})
	if err != nil {
		return nil, err
	}
	stats.Campaigns.Total = campaignTotal

	running, err := s.campaignRepo.FindRunning(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	stats.Campaigns.Active = int64(len(running))

	return stats, nil
}

// SalesTrends returns daily sales buckets for the last N days, padding
// days without orders with zero points so charts render a full axis.
func (s *Service) SalesTrends(ctx context.Context, days int) (*SalesTrends, error) {
	if days <= 0 || days > 365 {
		days = 30
	}

	end := time.Now()
	start := end.AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)

	buckets, err := s.orderRepo.SalesByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]order.DailySales, len(buckets))
	for _, b := range buckets {
		byDate[b.Date.Format("2006-01-02")] = b
	}

	points := make([]SalesTrendPoint, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		point := SalesTrendPoint{Date: date, TotalSales: decimal.Zero}
		if b, ok := byDate[date]; ok {
			point.OrderCount = b.OrderCount
			point.TotalSales = b.TotalSales
		}
		points = append(points, point)
	}

	return &SalesTrends{Days: days, Points: points}, nil
}
