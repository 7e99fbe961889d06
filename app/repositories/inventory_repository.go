package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/pkg/apperr"
)

// InventoryRepository is the single source of truth for product stock.
// Reserve and Release are atomic at the granularity of one product: the
// stock check and the decrement happen inside a single conditional UpdateOne,
// never as a separate read followed by a write.
type InventoryRepository struct {
	col *mongo.Collection
}

func NewInventoryRepository(db *mongo.Database) *InventoryRepository {
	return &InventoryRepository{col: db.Collection("products")}
}

// Reserve atomically decrements quantityInStock by qty if and only if at
// least qty units are available. A zero-match result is disambiguated with a
// follow-up point read: missing product → NotFoundError, present but short →
// InsufficientStockError.
func (r *InventoryRepository) Reserve(ctx context.Context, productID string, qty int) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "quantityInStock": bson.M{"$gte": qty}},
		bson.M{
			"$inc": bson.M{"quantityInStock": -qty},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return &apperr.PersistenceError{Op: "inventory.reserve", Err: err}
	}
	if res.MatchedCount == 1 {
		return nil
	}

	// The conditional update matched nothing; find out why.
	product, err := r.Get(ctx, productID)
	if err != nil {
		return err // NotFound or Persistence
	}
	return &apperr.InsufficientStockError{
		ProductID: productID,
		Requested: qty,
		Available: product.QuantityInStock,
	}
}

// Release unconditionally increments quantityInStock by qty. It is a plain
// increment, not an undo-log replay; idempotency is the caller's
// responsibility.
func (r *InventoryRepository) Release(ctx context.Context, productID string, qty int) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$inc": bson.M{"quantityInStock": qty},
			"$set": bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	if err != nil {
		return &apperr.PersistenceError{Op: "inventory.release", Err: err}
	}
	if res.MatchedCount == 0 {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	return nil
}

// Get returns a product by its identifier.
func (r *InventoryRepository) Get(ctx context.Context, productID string) (models.Product, error) {
	var product models.Product

	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return product, &apperr.NotFoundError{Resource: "product", ID: productID}
	}

	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		return product, &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	if err != nil {
		return product, &apperr.PersistenceError{Op: "inventory.get", Err: err}
	}
	return product, nil
}

// ListBelowThreshold returns every product whose stock is strictly below its
// own threshold, evaluated per document at query time.
func (r *InventoryRepository) ListBelowThreshold(ctx context.Context) ([]models.Product, error) {
	filter := bson.M{"$expr": bson.M{"$lt": bson.A{"$quantityInStock", "$lowStockThreshold"}}}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "inventory.listBelowThreshold", Err: err}
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, &apperr.PersistenceError{Op: "inventory.listBelowThreshold", Err: err}
	}
	return products, nil
}

// Create inserts a new catalog entry and fills in its storage identity.
func (r *InventoryRepository) Create(ctx context.Context, product *models.Product) error {
	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrDuplicateID
		}
		return &apperr.PersistenceError{Op: "inventory.create", Err: err}
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}

// Update replaces the catalog fields of a product and refreshes updatedAt.
// Stock set through here is an operator-level restock/correction; order
// logic never calls Update.
func (r *InventoryRepository) Update(ctx context.Context, productID string, product models.Product) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"name":              product.Name,
			"sku":               product.SKU,
			"price":             product.Price,
			"quantityInStock":   product.QuantityInStock,
			"category":          product.Category,
			"lowStockThreshold": product.LowStockThreshold,
			"updatedAt":         time.Now().UTC(),
		}},
	)
	if err != nil {
		return &apperr.PersistenceError{Op: "inventory.update", Err: err}
	}
	if res.MatchedCount == 0 {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	return nil
}

// Delete removes a product from the catalog.
func (r *InventoryRepository) Delete(ctx context.Context, productID string) error {
	oid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return &apperr.PersistenceError{Op: "inventory.delete", Err: err}
	}
	if res.DeletedCount == 0 {
		return &apperr.NotFoundError{Resource: "product", ID: productID}
	}
	return nil
}

// List returns a page of the catalog ordered by creation time, newest first,
// along with the total count.
func (r *InventoryRepository) List(ctx context.Context, offset, limit int64) ([]models.Product, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, &apperr.PersistenceError{Op: "inventory.list", Err: err}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, &apperr.PersistenceError{Op: "inventory.list", Err: err}
	}
	defer cur.Close(ctx)

	products := []models.Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, 0, &apperr.PersistenceError{Op: "inventory.list", Err: err}
	}
	return products, total, nil
}
