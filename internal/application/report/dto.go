package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats is the admin landing-page summary
type DashboardStats struct {
	Orders    OrderStats    `json:"orders"`
	Customers CustomerStats `json:"customers"`
	Products  ProductStats  `json:"products"`
	Campaigns CampaignStats `json:"campaigns"`
	Recent    []RecentOrder `json:"recent_orders"`
}

// OrderStats covers order volume and revenue
type OrderStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	TotalSales decimal.Decimal  `json:"total_sales"`
	SalesCount int64            `json:"sales_count"`
}

// CustomerStats covers the CRM funnel
type CustomerStats struct {
	Total        int64            `json:"total"`
	ByStatus     map[string]int64 `json:"by_status"`
	NewThisMonth int64            `json:"new_this_month"`
}

// ProductStats covers catalog health
type ProductStats struct {
	Total    int64 `json:"total"`
	LowStock int64 `json:"low_stock"`
}

// CampaignStats covers marketing activity
type CampaignStats struct {
	Total  int64 `json:"total"`
	Active int64 `json:"active"`
}

// RecentOrder is one row of the dashboard's latest-orders table
type RecentOrder struct {
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Status       string          `json:"status"`
	Total        decimal.Decimal `json:"total"`
	CreatedAt    time.Time       `json:"created_at"`
}

// SalesTrendPoint is one day of the sales trend chart
type SalesTrendPoint struct {
	Date       string          `json:"date"` // YYYY-MM-DD
	OrderCount int64           `json:"order_count"`
	TotalSales decimal.Decimal `json:"total_sales"`
}

// SalesTrends is the sales-over-time report
type SalesTrends struct {
	Days   int               `json:"days"`
	Points []SalesTrendPoint `json:"points"`
}
