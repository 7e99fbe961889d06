// Package apperr defines the typed business errors returned by the vanij
// services. Callers branch with errors.As / errors.Is instead of matching
// message strings, and the HTTP layer maps each kind to a status code.
//
// Recoverable kinds: ValidationError, NotFoundError, InsufficientStockError,
// InvalidTransitionError. PersistenceError is the fatal kind: it means the
// store itself failed and the current operation could not be completed (or,
// worst case, compensated).
package apperr

import (
	"errors"
	"fmt"
)

// ErrDuplicateID signals that an insert collided with an existing unique
// identifier. Repositories translate store-level duplicate-key errors into
// this sentinel so the caller can regenerate and retry.
var ErrDuplicateID = errors.New("duplicate identifier")

// ValidationError reports semantically invalid input (empty line items,
// non-positive quantity, unknown status value).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation: " + e.Reason
	}
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Reason)
}

// NotFoundError reports an unknown product or order identifier.
type NotFoundError struct {
	Resource string // "product" | "order"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// InsufficientStockError reports a reservation denied because the requested
// quantity exceeds the available stock. Requested and Available let the
// caller act without re-reading the product.
type InsufficientStockError struct {
	ProductID string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %q: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// InvalidTransitionError reports an order status change that is not permitted
// from the order's current status.
type InvalidTransitionError struct {
	OrderID string
	From    string
	To      string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("order %q: invalid status transition %s -> %s", e.OrderID, e.From, e.To)
}

// PersistenceError wraps a store-level failure (connectivity, write error).
// Op names the operation that failed, e.g. "inventory.reserve".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var is *InsufficientStockError
	return errors.As(err, &is)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsInvalidTransition reports whether err is an InvalidTransitionError.
func IsInvalidTransition(err error) bool {
	var it *InvalidTransitionError
	return errors.As(err, &it)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
