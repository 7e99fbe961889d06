package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "processing", "shipped", "completed", "cancelled"} {
		st, ok := ParseStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, OrderStatus(raw), st)
	}

	for _, raw := range []string{"", "Pending", "delivered", "PENDING", "cancel"} {
		_, ok := ParseStatus(raw)
		assert.False(t, ok, raw)
	}
}

func TestStatusTransitions(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled}

	legal := map[[2]OrderStatus]bool{
		{StatusPending, StatusProcessing}:  true,
		{StatusProcessing, StatusShipped}:  true,
		{StatusShipped, StatusCompleted}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusProcessing, StatusCancelled}: true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]OrderStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s → %s", from, to)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusProcessing.Terminal())
	assert.False(t, StatusShipped.Terminal())
}

func TestOrderTotal(t *testing.T) {
	o := Order{LineItems: []OrderLineItem{
		{ProductID: "a", Quantity: 3, UnitPrice: 2.5},
		{ProductID: "b", Quantity: 1, UnitPrice: 10},
	}}
	assert.InDelta(t, 17.5, o.Total(), 1e-9)
	assert.Zero(t, Order{}.Total())
}

func TestProductLowOnStock(t *testing.T) {
	p := Product{QuantityInStock: 3, LowStockThreshold: 5}
	assert.True(t, p.LowOnStock())

	// Ties are excluded: stock == threshold is not low.
	p.QuantityInStock = 5
	assert.False(t, p.LowOnStock())
}

func TestNewProductDefaults(t *testing.T) {
	p := NewProduct("Widget", "WID-1", 9.99, 10, "tools", -1)
	assert.Equal(t, DefaultLowStockThreshold, p.LowStockThreshold)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	p = NewProduct("Widget", "", 9.99, 10, "", 0)
	assert.Equal(t, 0, p.LowStockThreshold)
}
