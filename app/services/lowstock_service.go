package services

import (
	"context"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/pkg/logger"
	"github.com/shashiranjanraj/vanij/pkg/metrics"
)

// LowStockService reports products whose stock has fallen strictly below
// their per-product threshold.
type LowStockService struct {
	inventory InventoryStore
}

func NewLowStockService(inventory InventoryStore) *LowStockService {
	return &LowStockService{inventory: inventory}
}

// LowStock returns the current set of low-stock products, evaluated against
// live stock at call time.
func (s *LowStockService) LowStock(ctx context.Context) ([]models.Product, error) {
	products, err := s.inventory.ListBelowThreshold(ctx)
	if err != nil {
		return nil, err
	}
	metrics.LowStockProducts.Set(float64(len(products)))
	return products, nil
}

// Sweep refreshes the low-stock gauge and logs the current state. Wired to
// the scheduler so the gauge stays fresh even without API traffic.
func (s *LowStockService) Sweep(ctx context.Context) {
	products, err := s.LowStock(ctx)
	if err != nil {
		logger.WithCtx(ctx).Error("low stock sweep failed", "error", err)
		return
	}
	if len(products) > 0 {
		logger.WithCtx(ctx).Warn("products below stock threshold", "count", len(products))
	}
}
