package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/repositories"
)

func TestWeeklySalesPassthrough(t *testing.T) {
	sales := &fakeSales{summary: repositories.SalesSummary{TotalSales: 340.5, OrderCount: 7}}
	svc := NewAnalyticsService(sales)

	summary, err := svc.WeeklySales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 340.5, summary.TotalSales)
	assert.Equal(t, 7, summary.OrderCount)
	assert.Equal(t, 1, sales.calls)
}

func TestStatsCombinesCountsAndRevenue(t *testing.T) {
	sales := &fakeSales{
		counts: map[models.OrderStatus]int64{
			models.StatusPending:   3,
			models.StatusCompleted: 12,
		},
		revenue: 1999.99,
	}
	svc := NewAnalyticsService(sales)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.StatusCounts[models.StatusPending])
	assert.Equal(t, int64(12), stats.StatusCounts[models.StatusCompleted])
	assert.Equal(t, 1999.99, stats.CompletedRevenue)
}
