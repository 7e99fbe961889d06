package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/pkg/apperr"
)

func intPtr(n int) *int { return &n }

func TestProductCreateDefaultsThreshold(t *testing.T) {
	svc := NewProductService(newFakeCatalog())

	product, err := svc.Create(context.Background(), ProductInput{
		Name:            "Desk Lamp",
		Price:           29.99,
		QuantityInStock: 40,
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultLowStockThreshold, product.LowStockThreshold)
	assert.False(t, product.ID.IsZero())
}

func TestProductCreateExplicitZeroThreshold(t *testing.T) {
	svc := NewProductService(newFakeCatalog())

	// Zero disables low-stock reporting for the product and must not be
	// overwritten by the default.
	product, err := svc.Create(context.Background(), ProductInput{
		Name:              "Promo Sticker",
		Price:             0.5,
		QuantityInStock:   1000,
		LowStockThreshold: intPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, product.LowStockThreshold)
	assert.False(t, product.LowOnStock())
}

func TestProductCreateValidation(t *testing.T) {
	svc := NewProductService(newFakeCatalog())

	cases := []struct {
		name string
		in   ProductInput
	}{
		{"empty name", ProductInput{Price: 1}},
		{"blank name", ProductInput{Name: "   ", Price: 1}},
		{"negative price", ProductInput{Name: "X", Price: -1}},
		{"negative stock", ProductInput{Name: "X", Price: 1, QuantityInStock: -5}},
		{"negative threshold", ProductInput{Name: "X", Price: 1, LowStockThreshold: intPtr(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			assert.True(t, apperr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestProductCreateDuplicateSKU(t *testing.T) {
	svc := NewProductService(newFakeCatalog())

	_, err := svc.Create(context.Background(), ProductInput{Name: "A", SKU: "SKU-1", Price: 1})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), ProductInput{Name: "B", SKU: "SKU-1", Price: 1})
	assert.True(t, apperr.IsValidation(err))
}

func TestProductUpdatePreservesThresholdWhenOmitted(t *testing.T) {
	catalog := newFakeCatalog()
	svc := NewProductService(catalog)

	created, err := svc.Create(context.Background(), ProductInput{
		Name:              "Desk Lamp",
		Price:             29.99,
		QuantityInStock:   40,
		LowStockThreshold: intPtr(8),
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID.Hex(), ProductInput{
		Name:            "Desk Lamp v2",
		Price:           34.99,
		QuantityInStock: 35,
	})
	require.NoError(t, err)
	assert.Equal(t, "Desk Lamp v2", updated.Name)
	assert.Equal(t, 8, updated.LowStockThreshold)
}

func TestProductDeleteAndGet(t *testing.T) {
	catalog := newFakeCatalog()
	svc := NewProductService(catalog)

	created, err := svc.Create(context.Background(), ProductInput{Name: "A", Price: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID.Hex()))
	_, err = svc.Get(context.Background(), created.ID.Hex())
	assert.True(t, apperr.IsNotFound(err))

	err = svc.Delete(context.Background(), created.ID.Hex())
	assert.True(t, apperr.IsNotFound(err))
}
