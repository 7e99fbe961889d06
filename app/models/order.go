package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// transitions is the full set of legal status moves. Anything absent here is
// an invalid transition, including any move out of a terminal status.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted},
}

// ParseStatus validates a raw status string.
func ParseStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether moving from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether s permits no further transitions.
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

// OrderLineItem is one reserved product within an order. UnitPrice is
// captured at order time and is independent of the product's current price.
type OrderLineItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
}

// Order is an immutable record of a fulfilled reservation set. Only Status
// may change after creation; OrderID, OrderDate and LineItems are fixed.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	OrderID         string             `bson:"orderId" json:"orderId"`
	OrderDate       time.Time          `bson:"orderDate" json:"orderDate"`
	LineItems       []OrderLineItem    `bson:"lineItems" json:"lineItems"`
	CustomerName    string             `bson:"customerName,omitempty" json:"customerName"`
	CustomerContact string             `bson:"customerContact,omitempty" json:"customerContact"`
	Status          OrderStatus        `bson:"status" json:"status"`
}

// Total is the order value at the captured unit prices.
func (o Order) Total() float64 {
	var sum float64
	for _, li := range o.LineItems {
		sum += float64(li.Quantity) * li.UnitPrice
	}
	return sum
}
