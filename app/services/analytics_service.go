package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/repositories"
	"github.com/shashiranjanraj/vanij/pkg/cache"
	"github.com/shashiranjanraj/vanij/pkg/logger"
)

const (
	weeklySalesCacheKey = "analytics:weekly"
	orderStatsCacheKey  = "analytics:stats"
	analyticsCacheTTL   = 30 * time.Second
)

// OrderStats is the per-status order breakdown plus completed revenue.
type OrderStats struct {
	StatusCounts     map[models.OrderStatus]int64 `json:"statusCounts"`
	CompletedRevenue float64                      `json:"completedRevenue"`
}

// AnalyticsService aggregates sales figures from the order ledger. Results
// are cached for a short TTL; analytics tolerate slight staleness, stock
// never does, so this is the only service that touches the cache.
type AnalyticsService struct {
	sales SalesReader
}

func NewAnalyticsService(sales SalesReader) *AnalyticsService {
	return &AnalyticsService{sales: sales}
}

// WeeklySales returns total line-item value and distinct order count for the
// trailing seven days, excluding cancelled orders.
func (s *AnalyticsService) WeeklySales(ctx context.Context) (repositories.SalesSummary, error) {
	var summary repositories.SalesSummary
	if cache.Get(weeklySalesCacheKey, &summary) {
		return summary, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -7)
	summary, err := s.sales.SalesSummarySince(ctx, since)
	if err != nil {
		return repositories.SalesSummary{}, err
	}

	if err := cache.Set(weeklySalesCacheKey, summary, analyticsCacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("analytics cache write failed", "key", weeklySalesCacheKey, "error", err)
	}
	return summary, nil
}

// Stats returns the order count per status and total completed revenue.
func (s *AnalyticsService) Stats(ctx context.Context) (OrderStats, error) {
	var stats OrderStats
	if cache.Get(orderStatsCacheKey, &stats) {
		return stats, nil
	}

	counts, err := s.sales.StatusCounts(ctx)
	if err != nil {
		return OrderStats{}, err
	}
	revenue, err := s.sales.CompletedRevenue(ctx)
	if err != nil {
		return OrderStats{}, err
	}

	stats = OrderStats{StatusCounts: counts, CompletedRevenue: revenue}
	if err := cache.Set(orderStatsCacheKey, stats, analyticsCacheTTL); err != nil {
		logger.WithCtx(ctx).Warn("analytics cache write failed", "key", orderStatsCacheKey, "error", err)
	}
	return stats, nil
}
