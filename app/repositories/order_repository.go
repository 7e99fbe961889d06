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

// SalesSummary is the aggregate over a window of orders.
type SalesSummary struct {
	TotalSales float64 `bson:"totalSales" json:"weeklySales"`
	OrderCount int     `bson:"orderCount" json:"orderCount"`
}

// OrderRepository is the order ledger: append-mostly storage of order
// records. Nothing here ever mutates lineItems, orderDate or orderId after
// insert; the only writable field is status.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection("orders")}
}

// Insert persists a new order. The unique index on orderId guarantees
// identifier uniqueness; a collision surfaces as apperr.ErrDuplicateID so
// the engine can regenerate and retry.
func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	res, err := r.col.InsertOne(ctx, order)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperr.ErrDuplicateID
		}
		return &apperr.PersistenceError{Op: "orders.insert", Err: err}
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// FindByOrderID returns the order with the given human-readable identifier.
func (r *OrderRepository) FindByOrderID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order

	err := r.col.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return order, &apperr.NotFoundError{Resource: "order", ID: orderID}
	}
	if err != nil {
		return order, &apperr.PersistenceError{Op: "orders.findByOrderId", Err: err}
	}
	return order, nil
}

// UpdateStatus sets only the status field. Returns false when no record
// matched the identifier.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": status}},
	)
	if err != nil {
		return false, &apperr.PersistenceError{Op: "orders.updateStatus", Err: err}
	}
	return res.MatchedCount > 0, nil
}

// List returns a page of orders, newest first, with the total count.
func (r *OrderRepository) List(ctx context.Context, offset, limit int64) ([]models.Order, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, &apperr.PersistenceError{Op: "orders.list", Err: err}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "orderDate", Value: -1}}).
		SetSkip(offset).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, &apperr.PersistenceError{Op: "orders.list", Err: err}
	}
	defer cur.Close(ctx)

	orders := []models.Order{}
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, &apperr.PersistenceError{Op: "orders.list", Err: err}
	}
	return orders, total, nil
}

// SalesSummarySince aggregates line-item value for orders placed at or after
// since. Cancelled orders are excluded: their stock was restored and they
// never counted as sales.
func (r *OrderRepository) SalesSummarySince(ctx context.Context, since time.Time) (SalesSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"orderDate": bson.M{"$gte": since},
			"status":    bson.M{"$ne": models.StatusCancelled},
		}}},
		{{Key: "$unwind", Value: "$lineItems"}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"totalSales": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$lineItems.quantity", "$lineItems.unitPrice"},
			}},
			"orders": bson.M{"$addToSet": "$orderId"},
		}}},
		{{Key: "$project", Value: bson.M{
			"totalSales": 1,
			"orderCount": bson.M{"$size": "$orders"},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return SalesSummary{}, &apperr.PersistenceError{Op: "orders.salesSummary", Err: err}
	}
	defer cur.Close(ctx)

	var results []SalesSummary
	if err := cur.All(ctx, &results); err != nil {
		return SalesSummary{}, &apperr.PersistenceError{Op: "orders.salesSummary", Err: err}
	}
	if len(results) == 0 {
		return SalesSummary{}, nil
	}
	return results[0], nil
}

// StatusCounts returns the number of orders per status.
func (r *OrderRepository) StatusCounts(ctx context.Context) (map[models.OrderStatus]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, &apperr.PersistenceError{Op: "orders.statusCounts", Err: err}
	}
	defer cur.Close(ctx)

	var rows []struct {
		Status models.OrderStatus `bson:"_id"`
		Count  int64              `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, &apperr.PersistenceError{Op: "orders.statusCounts", Err: err}
	}

	counts := make(map[models.OrderStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CompletedRevenue sums the value of all completed orders.
func (r *OrderRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"status": models.StatusCompleted}}},
		{{Key: "$unwind", Value: "$lineItems"}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"revenue": bson.M{"$sum": bson.M{
				"$multiply": bson.A{"$lineItems.quantity", "$lineItems.unitPrice"},
			}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, &apperr.PersistenceError{Op: "orders.completedRevenue", Err: err}
	}
	defer cur.Close(ctx)

	var rows []struct {
		Revenue float64 `bson:"revenue"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, &apperr.PersistenceError{Op: "orders.completedRevenue", Err: err}
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Revenue, nil
}
