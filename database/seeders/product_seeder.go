// Package seeders populates the store with sample data for local
// development.
package seeders

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/app/repositories"
)

// RunAll executes every seeder. Seeders are idempotent: they skip collections
// that already hold data.
func RunAll(ctx context.Context, db *mongo.Database) error {
	return seedProducts(ctx, db)
}

func seedProducts(ctx context.Context, db *mongo.Database) error {
	count, err := db.Collection("products").CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("seeders: count products: %w", err)
	}
	if count > 0 {
		fmt.Printf("products: %d existing, skipping\n", count)
		return nil
	}

	samples := []struct {
		name      string
		sku       string
		price     float64
		stock     int
		category  string
		threshold int
	}{
		{"Steel Water Bottle 750ml", "BTL-750", 12.50, 120, "kitchen", 10},
		{"Ceramic Mug", "MUG-STD", 6.99, 80, "kitchen", 10},
		{"Desk Lamp", "LMP-DSK", 29.99, 35, "office", 5},
		{"A5 Notebook (pack of 3)", "NBK-A5-3", 8.25, 200, "office", 20},
		{"Gel Pen Set", "PEN-GEL", 4.50, 3, "office", 5},
		{"Cotton Tote Bag", "BAG-TOTE", 9.00, 60, "accessories", 8},
	}

	inventory := repositories.NewInventoryRepository(db)
	for _, s := range samples {
		product := models.NewProduct(s.name, s.sku, s.price, s.stock, s.category, s.threshold)
		if err := inventory.Create(ctx, &product); err != nil {
			return fmt.Errorf("seeders: create %q: %w", s.name, err)
		}
	}

	fmt.Printf("products: seeded %d\n", len(samples))
	return nil
}
