package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultLowStockThreshold is applied when a product is created without an
// explicit threshold.
const DefaultLowStockThreshold = 5

// Product is a catalog entry. QuantityInStock is the only contended field:
// order logic changes it exclusively through the inventory repository's
// Reserve/Release operations, never by setting it to an arbitrary value.
type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	SKU               string             `bson:"sku,omitempty" json:"sku"`
	Price             float64            `bson:"price" json:"price"`
	QuantityInStock   int                `bson:"quantityInStock" json:"quantityInStock"`
	Category          string             `bson:"category,omitempty" json:"category"`
	LowStockThreshold int                `bson:"lowStockThreshold" json:"lowStockThreshold"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewProduct builds a Product with all defaulting applied at construction:
// threshold < 0 falls back to the package default, timestamps are set to now.
func NewProduct(name, sku string, price float64, stock int, category string, threshold int) Product {
	if threshold < 0 {
		threshold = DefaultLowStockThreshold
	}
	now := time.Now().UTC()
	return Product{
		Name:              name,
		SKU:               sku,
		Price:             price,
		QuantityInStock:   stock,
		Category:          category,
		LowStockThreshold: threshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// LowOnStock reports whether the product is below its replenishment
// threshold. Equality is not low: a product at exactly its threshold is fine.
func (p Product) LowOnStock() bool {
	return p.QuantityInStock < p.LowStockThreshold
}
