package services

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/repositories"
	"github.com/shashiranjanraj/vanij/pkg/apperr"
)

// fakeInventory is an in-memory InventoryStore with the same atomicity
// contract as the real repository: Reserve checks and decrements under one
// lock acquisition.
type fakeInventory struct {
	mu       sync.Mutex
	products map[string]models.Product

	reserveErr map[string]error // forced Reserve failures per product
	releaseErr map[string]error // forced Release failures per product
	releases   []releaseCall
}

type releaseCall struct {
	productID string
	qty       int
}

func newFakeInventory(products ...models.Product) *fakeInventory {
	f := &fakeInventory{
		products:   make(map[string]models.Product),
		reserveErr: make(map[string]error),
		releaseErr: make(map[string]error),
	}
	for _, p := range products {
		f.products[p.ID.Hex()] = p
	}
	return f
}

func (f *fakeInventory) Reserve(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.reserveErr[productID]; err != nil {
		return err
	}
	p, ok := f.products[productID]
	if !ok {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	if p.QuantityInStock < qty {
		return &apperr.InsufficientStockError{
			ProductID: productID,
			Requested: qty,
			Available: p.QuantityInStock,
		}
	}
	p.QuantityInStock -= qty
	f.products[productID] = p
	return nil
}

func (f *fakeInventory) Release(_ context.Context, productID string, qty int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.releaseErr[productID]; err != nil {
		return err
	}
	p, ok := f.products[productID]
	if !ok {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	p.QuantityInStock += qty
	f.products[productID] = p
	f.releases = append(f.releases, releaseCall{productID: productID, qty: qty})
	return nil
}

func (f *fakeInventory) Get(_ context.Context, productID string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[productID]
	if !ok {
		return models.Product{}, &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	return p, nil
}

func (f *fakeInventory) ListBelowThreshold(_ context.Context) ([]models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	low := []models.Product{}
	for _, p := range f.products {
		if p.LowOnStock() {
			low = append(low, p)
		}
	}
	return low, nil
}

func (f *fakeInventory) stock(productID string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[productID].QuantityInStock
}

func (f *fakeInventory) releaseCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.releases)
}

// fakeLedger is an in-memory OrderLedger keyed by orderId.
type fakeLedger struct {
	mu     sync.Mutex
	orders map[string]models.Order

	insertErr      error // forced failure on every insert
	duplicateFirst int   // return ErrDuplicateID for the first N inserts
	inserts        int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{orders: make(map[string]models.Order)}
}

func (f *fakeLedger) Insert(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inserts++
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.inserts <= f.duplicateFirst {
		return apperr.ErrDuplicateID
	}
	if _, exists := f.orders[order.OrderID]; exists {
		return apperr.ErrDuplicateID
	}
	f.orders[order.OrderID] = *order
	return nil
}

func (f *fakeLedger) FindByOrderID(_ context.Context, orderID string) (models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, &apperr.NotFoundError{Resource: "order", ID: orderID}
	}
	return order, nil
}

func (f *fakeLedger) UpdateStatus(_ context.Context, orderID string, status models.OrderStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	order, ok := f.orders[orderID]
	if !ok {
		return false, nil
	}
	order.Status = status
	f.orders[orderID] = order
	return true, nil
}

func (f *fakeLedger) List(_ context.Context, offset, limit int64) ([]models.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]models.Order, 0, len(f.orders))
	for _, o := range f.orders {
		all = append(all, o)
	}
	total := int64(len(all))
	if offset >= total {
		return []models.Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (f *fakeLedger) put(order models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.OrderID] = order
}

func (f *fakeLedger) get(orderID string) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	return order, ok
}

// fakeCatalog is an in-memory CatalogStore.
type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{products: make(map[string]models.Product)}
}

func (f *fakeCatalog) Create(_ context.Context, product *models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if product.SKU != "" {
		for _, p := range f.products {
			if p.SKU == product.SKU {
				return apperr.ErrDuplicateID
			}
		}
	}
	product.ID = primitive.NewObjectID()
	f.products[product.ID.Hex()] = *product
	return nil
}

func (f *fakeCatalog) Update(_ context.Context, productID string, product models.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[productID]; !ok {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	f.products[productID] = product
	return nil
}

func (f *fakeCatalog) Delete(_ context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[productID]; !ok {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	delete(f.products, productID)
	return nil
}

func (f *fakeCatalog) Get(_ context.Context, productID string) (models.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[productID]
	if !ok {
		return models.Product{}, &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	return p, nil
}

func (f *fakeCatalog) List(_ context.Context, offset, limit int64) ([]models.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		all = append(all, p)
	}
	total := int64(len(all))
	if offset >= total {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// fakeSales is a canned SalesReader for analytics tests.
type fakeSales struct {
	summary repositories.SalesSummary
	counts  map[models.OrderStatus]int64
	revenue float64
	calls   int
}

func (f *fakeSales) SalesSummarySince(_ context.Context, _ time.Time) (repositories.SalesSummary, error) {
	f.calls++
	return f.summary, nil
}

func (f *fakeSales) StatusCounts(_ context.Context) (map[models.OrderStatus]int64, error) {
	f.calls++
	return f.counts, nil
}

func (f *fakeSales) CompletedRevenue(_ context.Context) (float64, error) {
	f.calls++
	return f.revenue, nil
}
