package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/pkg/apperr"
)

func testProduct(stock int) models.Product {
	p := models.NewProduct("Steel Bottle", "", 12.50, stock, "kitchen", models.DefaultLowStockThreshold)
	p.ID = primitive.NewObjectID()
	return p
}

func TestCreateOrderReservesStockAndPersists(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	svc := NewFulfillmentService(inv, ledger)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 3, UnitPrice: 12.50},
		},
		CustomerName: "Asha",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, 7, inv.stock(product.ID.Hex()))

	stored, ok := ledger.get(order.OrderID)
	require.True(t, ok)
	assert.Equal(t, order.LineItems, stored.LineItems)
	assert.False(t, stored.OrderDate.IsZero())
}

func TestCreateOrderValidation(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	svc := NewFulfillmentService(inv, newFakeLedger())

	cases := []struct {
		name  string
		items []models.OrderLineItem
	}{
		{"empty line items", nil},
		{"zero quantity", []models.OrderLineItem{{ProductID: product.ID.Hex(), Quantity: 0, UnitPrice: 1}}},
		{"negative quantity", []models.OrderLineItem{{ProductID: product.ID.Hex(), Quantity: -2, UnitPrice: 1}}},
		{"negative unit price", []models.OrderLineItem{{ProductID: product.ID.Hex(), Quantity: 1, UnitPrice: -1}}},
		{"missing product id", []models.OrderLineItem{{ProductID: "", Quantity: 1, UnitPrice: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), CreateOrderInput{LineItems: tc.items})
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
			assert.Equal(t, 10, inv.stock(product.ID.Hex()))
		})
	}
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	product := testProduct(2)
	inv := newFakeInventory(product)
	svc := NewFulfillmentService(inv, newFakeLedger())

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 5, UnitPrice: 1},
		},
	})

	var ise *apperr.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, 5, ise.Requested)
	assert.Equal(t, 2, ise.Available)
	assert.Equal(t, 2, inv.stock(product.ID.Hex()))
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	inv := newFakeInventory(testProduct(10))
	svc := NewFulfillmentService(inv, newFakeLedger())

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 1, UnitPrice: 1},
		},
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateOrderRollsBackPartialReservation(t *testing.T) {
	first := testProduct(10)
	second := testProduct(1)
	inv := newFakeInventory(first, second)
	ledger := newFakeLedger()
	svc := NewFulfillmentService(inv, ledger)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: first.ID.Hex(), Quantity: 4, UnitPrice: 1},
			{ProductID: second.ID.Hex(), Quantity: 3, UnitPrice: 1},
		},
	})
	require.True(t, apperr.IsInsufficientStock(err))

	// The first reservation must have been compensated in full.
	assert.Equal(t, 10, inv.stock(first.ID.Hex()))
	assert.Equal(t, 1, inv.stock(second.ID.Hex()))
	assert.Equal(t, 1, inv.releaseCount())
	assert.Empty(t, ledger.orders)
}

func TestCreateOrderConcurrentNoOversell(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	svc := NewFulfillmentService(inv, newFakeLedger())

	input := CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 6, UnitPrice: 1},
		},
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.CreateOrder(context.Background(), input)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, apperr.IsInsufficientStock(err))
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 4, inv.stock(product.ID.Hex()))
}

func TestCreateOrderRetriesDuplicateOrderID(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	ledger.duplicateFirst = 2
	svc := NewFulfillmentService(inv, ledger)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 1, UnitPrice: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, ledger.inserts)
	assert.Equal(t, 9, inv.stock(product.ID.Hex()))
	_, ok := ledger.get(order.OrderID)
	assert.True(t, ok)
}

func TestCreateOrderReleasesStockWhenInsertFails(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	ledger.insertErr = &apperr.PersistenceError{Op: "orders.insert", Err: errors.New("write concern failed")}
	svc := NewFulfillmentService(inv, ledger)

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 4, UnitPrice: 1},
		},
	})
	require.True(t, apperr.IsPersistence(err))
	assert.Equal(t, 10, inv.stock(product.ID.Hex()))
}

func TestCreateOrderCompensationFailureIsFatal(t *testing.T) {
	first := testProduct(10)
	second := testProduct(0)
	inv := newFakeInventory(first, second)
	inv.releaseErr[first.ID.Hex()] = errors.New("store unreachable")
	svc := NewFulfillmentService(inv, newFakeLedger())

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: first.ID.Hex(), Quantity: 2, UnitPrice: 1},
			{ProductID: second.ID.Hex(), Quantity: 1, UnitPrice: 1},
		},
	})

	var pe *apperr.PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "fulfillment.compensate", pe.Op)
}

func TestUpdateStatusLegalTransitions(t *testing.T) {
	product := testProduct(10)

	steps := []string{"processing", "shipped", "completed"}
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	ledger.put(models.Order{OrderID: "ORD-TEST", Status: models.StatusPending})
	svc := NewFulfillmentService(inv, ledger)

	for _, next := range steps {
		order, err := svc.UpdateStatus(context.Background(), "ORD-TEST", next)
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, models.OrderStatus(next), order.Status)
	}

	// completed is terminal
	_, err := svc.UpdateStatus(context.Background(), "ORD-TEST", "pending")
	assert.True(t, apperr.IsInvalidTransition(err))
}

func TestUpdateStatusRejectsIllegalMoves(t *testing.T) {
	ledger := newFakeLedger()
	ledger.put(models.Order{OrderID: "ORD-TEST", Status: models.StatusPending})
	svc := NewFulfillmentService(newFakeInventory(), ledger)

	_, err := svc.UpdateStatus(context.Background(), "ORD-TEST", "shipped")
	var it *apperr.InvalidTransitionError
	require.True(t, errors.As(err, &it))
	assert.Equal(t, "pending", it.From)
	assert.Equal(t, "shipped", it.To)

	// Status must not have moved.
	order, _ := ledger.get("ORD-TEST")
	assert.Equal(t, models.StatusPending, order.Status)
}

func TestUpdateStatusUnknownValue(t *testing.T) {
	svc := NewFulfillmentService(newFakeInventory(), newFakeLedger())
	_, err := svc.UpdateStatus(context.Background(), "ORD-TEST", "refunded")
	assert.True(t, apperr.IsValidation(err))
}

func TestUpdateStatusOrderNotFound(t *testing.T) {
	svc := NewFulfillmentService(newFakeInventory(), newFakeLedger())
	_, err := svc.UpdateStatus(context.Background(), "ORD-MISSING", "processing")
	assert.True(t, apperr.IsNotFound(err))
}

func TestCancellationRestoresStock(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	svc := NewFulfillmentService(inv, ledger)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 4, UnitPrice: 1},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 6, inv.stock(product.ID.Hex()))

	cancelled, err := svc.UpdateStatus(context.Background(), order.OrderID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, cancelled.Status)
	assert.Equal(t, 10, inv.stock(product.ID.Hex()))
}

func TestCancellationFromProcessingRestoresStock(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	svc := NewFulfillmentService(inv, ledger)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 3, UnitPrice: 1},
		},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.OrderID, "processing")
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.OrderID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, 10, inv.stock(product.ID.Hex()))
}

func TestCancellationReleaseFailureKeepsStatus(t *testing.T) {
	product := testProduct(10)
	inv := newFakeInventory(product)
	ledger := newFakeLedger()
	svc := NewFulfillmentService(inv, ledger)

	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		LineItems: []models.OrderLineItem{
			{ProductID: product.ID.Hex(), Quantity: 2, UnitPrice: 1},
		},
	})
	require.NoError(t, err)

	inv.releaseErr[product.ID.Hex()] = errors.New("store unreachable")
	_, err = svc.UpdateStatus(context.Background(), order.OrderID, "cancelled")
	require.True(t, apperr.IsPersistence(err))

	// The status write never ran, so the order is still pending.
	stored, _ := ledger.get(order.OrderID)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestGetOrder(t *testing.T) {
	ledger := newFakeLedger()
	ledger.put(models.Order{OrderID: "ORD-TEST", Status: models.StatusPending})
	svc := NewFulfillmentService(newFakeInventory(), ledger)

	order, err := svc.GetOrder(context.Background(), "ORD-TEST")
	require.NoError(t, err)
	assert.Equal(t, "ORD-TEST", order.OrderID)

	_, err = svc.GetOrder(context.Background(), "ORD-NOPE")
	assert.True(t, apperr.IsNotFound(err))
}

func TestNewOrderIDFormat(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := newOrderID()
		assert.Len(t, id, 14)
		assert.True(t, strings.HasPrefix(id, "ORD-"))
		assert.Equal(t, strings.ToUpper(id), id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 90)
}
