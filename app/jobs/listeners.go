package jobs

import (
	"context"
	"time"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/services"
	"github.com/shashiranjanraj/vanij/pkg/event"
	"github.com/shashiranjanraj/vanij/pkg/logger"
	"github.com/shashiranjanraj/vanij/pkg/queue"
	"github.com/shashiranjanraj/vanij/pkg/workerpool"
)

const checkTimeout = 5 * time.Second

// WireAlerts registers the order-created listener. Every created order
// submits a stock check to the pool; the check re-reads each ordered product
// and dispatches an alert job for any that fell below threshold. The check
// runs off the request path, so a slow store or a full pool never delays
// order creation.
func WireAlerts(inventory services.InventoryStore, pool *workerpool.Pool) {
	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}

		err := pool.Submit(func() {
			checkOrderedProducts(inventory, order)
		})
		if err != nil {
			// Dropped under burst; the scheduled sweep will catch it.
			logger.Warn("low stock check dropped", "order_id", order.OrderID, "error", err)
		}
	})
}

func checkOrderedProducts(inventory services.InventoryStore, order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	seen := map[string]bool{}
	for _, li := range order.LineItems {
		if seen[li.ProductID] {
			continue
		}
		seen[li.ProductID] = true

		product, err := inventory.Get(ctx, li.ProductID)
		if err != nil {
			logger.Warn("low stock check read failed", "product_id", li.ProductID, "error", err)
			continue
		}
		if !product.LowOnStock() {
			continue
		}

		job := &LowStockAlertJob{
			ProductID:       product.ID.Hex(),
			Name:            product.Name,
			QuantityInStock: product.QuantityInStock,
			Threshold:       product.LowStockThreshold,
			DetectedAt:      time.Now().UTC(),
		}
		if err := queue.Dispatch(job); err != nil {
			logger.Error("low stock alert dispatch failed", "product_id", product.ID.Hex(), "error", err)
		}
	}
}
