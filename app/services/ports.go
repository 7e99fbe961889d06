package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/repositories"
)

// InventoryStore is the stock contract the fulfillment engine depends on.
// Reserve must be atomic per product: the stock check and the decrement are
// one indivisible step from the perspective of concurrent callers.
type InventoryStore interface {
	Reserve(ctx context.Context, productID string, qty int) error
	Release(ctx context.Context, productID string, qty int) error
	Get(ctx context.Context, productID string) (models.Product, error)
	ListBelowThreshold(ctx context.Context) ([]models.Product, error)
}

// CatalogStore is the product management contract.
type CatalogStore interface {
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, productID string, product models.Product) error
	Delete(ctx context.Context, productID string) error
	Get(ctx context.Context, productID string) (models.Product, error)
	List(ctx context.Context, offset, limit int64) ([]models.Product, int64, error)
}

// OrderLedger is the durable order storage contract.
type OrderLedger interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByOrderID(ctx context.Context, orderID string) (models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (bool, error)
	List(ctx context.Context, offset, limit int64) ([]models.Order, int64, error)
}

// SalesReader is the read-only aggregation contract used by analytics.
type SalesReader interface {
	SalesSummarySince(ctx context.Context, since time.Time) (repositories.SalesSummary, error)
	StatusCounts(ctx context.Context) (map[models.OrderStatus]int64, error)
	CompletedRevenue(ctx context.Context) (float64, error)
}
