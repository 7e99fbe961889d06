// Package services holds the business layer: the fulfillment engine, the
// catalog, low-stock reporting and analytics. Services receive their store
// dependencies through constructors; nothing here touches a global handle.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/vanij/app/models"
	"github.com/shashiranjanraj/vanij/pkg/apperr"
	"github.com/shashiranjanraj/vanij/pkg/event"
	"github.com/shashiranjanraj/vanij/pkg/logger"
	"github.com/shashiranjanraj/vanij/pkg/metrics"
)

// Domain events fired by the engine. Payload is the models.Order.
const (
	EventOrderCreated   = "order.created"
	EventOrderCancelled = "order.cancelled"
)

const (
	// releaseAttempts bounds retries of a compensating release before the
	// failure is escalated as fatal.
	releaseAttempts = 3
	// orderIDAttempts bounds regeneration after a duplicate orderId insert.
	orderIDAttempts = 5
)

// CreateOrderInput is the already-deserialized create-order request.
type CreateOrderInput struct {
	LineItems       []models.OrderLineItem
	CustomerName    string
	CustomerContact string
}

// FulfillmentService creates orders all-or-nothing against current stock and
// manages the order status lifecycle.
//
// There is no multi-document transaction underneath: correctness rests on
// per-product atomic reservations plus compensating releases. Any failure
// after a partial reservation triggers a release of everything reserved so
// far, so a failed CreateOrder always means zero net stock change.
type FulfillmentService struct {
	inventory InventoryStore
	ledger    OrderLedger
}

func NewFulfillmentService(inventory InventoryStore, ledger OrderLedger) *FulfillmentService {
	return &FulfillmentService{inventory: inventory, ledger: ledger}
}

// CreateOrder reserves stock for every line item in the order given, then
// persists a pending order. Reservations are sequential, not concurrent,
// within one order: each runs to completion before the next starts, which
// keeps the compensation set exact and bounded.
func (s *FulfillmentService) CreateOrder(ctx context.Context, in CreateOrderInput) (models.Order, error) {
	if err := validateLineItems(in.LineItems); err != nil {
		metrics.OrdersTotal.WithLabelValues("rejected").Inc()
		return models.Order{}, err
	}

	reserved := make([]models.OrderLineItem, 0, len(in.LineItems))
	for _, li := range in.LineItems {
		if err := s.inventory.Reserve(ctx, li.ProductID, li.Quantity); err != nil {
			if apperr.IsInsufficientStock(err) {
				metrics.ReservationConflicts.Inc()
			}
			// Undo everything reserved so far, then surface the
			// original failure.
			if rbErr := s.releaseAll(ctx, reserved, "rollback"); rbErr != nil {
				return models.Order{}, rbErr
			}
			metrics.OrdersTotal.WithLabelValues("rejected").Inc()
			return models.Order{}, err
		}
		reserved = append(reserved, li)
	}

	order := models.Order{
		OrderDate:       time.Now().UTC(),
		LineItems:       in.LineItems,
		CustomerName:    in.CustomerName,
		CustomerContact: in.CustomerContact,
		Status:          models.StatusPending,
	}

	var insertErr error
	for attempt := 0; attempt < orderIDAttempts; attempt++ {
		order.OrderID = newOrderID()
		insertErr = s.ledger.Insert(ctx, &order)
		if !errors.Is(insertErr, apperr.ErrDuplicateID) {
			break
		}
	}
	if insertErr != nil {
		// Reservations must never be lost: give the stock back before
		// surfacing the persistence failure.
		if rbErr := s.releaseAll(ctx, reserved, "rollback"); rbErr != nil {
			return models.Order{}, rbErr
		}
		metrics.OrdersTotal.WithLabelValues("failed").Inc()
		if errors.Is(insertErr, apperr.ErrDuplicateID) {
			return models.Order{}, &apperr.PersistenceError{Op: "orders.insert", Err: insertErr}
		}
		return models.Order{}, insertErr
	}

	metrics.OrdersTotal.WithLabelValues("created").Inc()
	logger.WithCtx(ctx).Info("order created",
		"order_id", order.OrderID,
		"line_items", len(order.LineItems),
		"total", order.Total(),
	)
	event.FireAsync(EventOrderCreated, order)
	return order, nil
}

// UpdateStatus validates and applies a status transition. Cancelling an
// order whose stock is still reserved (pending or processing) releases every
// line item's quantity before the new status is committed.
func (s *FulfillmentService) UpdateStatus(ctx context.Context, orderID, rawStatus string) (models.Order, error) {
	next, ok := models.ParseStatus(rawStatus)
	if !ok {
		return models.Order{}, &apperr.ValidationError{
			Field:  "status",
			Reason: fmt.Sprintf("unknown status %q", rawStatus),
		}
	}

	order, err := s.ledger.FindByOrderID(ctx, orderID)
	if err != nil {
		return models.Order{}, err
	}

	if !order.Status.CanTransitionTo(next) {
		return models.Order{}, &apperr.InvalidTransitionError{
			OrderID: orderID,
			From:    string(order.Status),
			To:      string(next),
		}
	}

	// The transition graph only permits cancellation from pending or
	// processing, i.e. while stock is reserved and not yet shipped.
	if next == models.StatusCancelled {
		if err := s.releaseAll(ctx, order.LineItems, "cancellation"); err != nil {
			return models.Order{}, err
		}
	}

	matched, err := s.ledger.UpdateStatus(ctx, orderID, next)
	if err != nil {
		return models.Order{}, err
	}
	if !matched {
		return models.Order{}, &apperr.NotFoundError{Resource: "order", ID: orderID}
	}

	order.Status = next
	logger.WithCtx(ctx).Info("order status updated", "order_id", orderID, "status", next)
	if next == models.StatusCancelled {
		event.FireAsync(EventOrderCancelled, order)
	}
	return order, nil
}

// GetOrder is a read-only passthrough to the ledger.
func (s *FulfillmentService) GetOrder(ctx context.Context, orderID string) (models.Order, error) {
	return s.ledger.FindByOrderID(ctx, orderID)
}

// ListOrders returns one page of the ledger and the total order count.
func (s *FulfillmentService) ListOrders(ctx context.Context, offset, limit int64) ([]models.Order, int64, error) {
	return s.ledger.List(ctx, offset, limit)
}

// releaseAll returns each reserved quantity to stock. Releases are plain
// increments, commutative across products, so ordering does not matter. A
// release that keeps failing after bounded retries is escalated as a fatal
// PersistenceError: that stock cannot be restored by this call path and
// must not be silently dropped.
func (s *FulfillmentService) releaseAll(ctx context.Context, items []models.OrderLineItem, reason string) error {
	for _, li := range items {
		var err error
		for attempt := 1; attempt <= releaseAttempts; attempt++ {
			if err = s.inventory.Release(ctx, li.ProductID, li.Quantity); err == nil {
				break
			}
			time.Sleep(time.Duration(attempt) * 10 * time.Millisecond)
		}
		if err != nil {
			logger.WithCtx(ctx).Error("stock release failed after retries",
				"product_id", li.ProductID,
				"quantity", li.Quantity,
				"reason", reason,
				"error", err,
			)
			return &apperr.PersistenceError{Op: "fulfillment.compensate", Err: err}
		}
		metrics.CompensationReleases.WithLabelValues(reason).Inc()
	}
	return nil
}

func validateLineItems(items []models.OrderLineItem) error {
	if len(items) == 0 {
		return &apperr.ValidationError{Field: "lineItems", Reason: "must not be empty"}
	}
	for i, li := range items {
		if li.ProductID == "" {
			return &apperr.ValidationError{
				Field:  fmt.Sprintf("lineItems[%d].productId", i),
				Reason: "is required",
			}
		}
		if li.Quantity <= 0 {
			return &apperr.ValidationError{
				Field:  fmt.Sprintf("lineItems[%d].quantity", i),
				Reason: "must be positive",
			}
		}
		if li.UnitPrice < 0 {
			return &apperr.ValidationError{
				Field:  fmt.Sprintf("lineItems[%d].unitPrice", i),
				Reason: "must not be negative",
			}
		}
	}
	return nil
}

// newOrderID builds a human-readable order identifier. Uniqueness is not
// assumed from the token alone; the ledger's unique index has the final
// word, and the engine regenerates on collision.
func newOrderID() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + token[:10]
}
