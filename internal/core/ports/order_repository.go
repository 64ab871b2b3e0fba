package ports

import (
	"context"
	"time"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their line items.
type OrderRepository interface {
	// Add inserts a new order and batch-inserts its line items.
	// The store-assigned id is written back with Order.AssignID.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the mutable order fields only if the stored status is
	// still expected. Returns errs.ConflictError when the row exists with
	// another status and errs.ObjectNotFoundError when it does not exist.
	Update(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order with its line items by id.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetByNumber retrieves an order with its line items by order number.
	GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error)

	// ListByStatusPlacedBefore returns orders in status whose order time is at
	// or before cutoff, oldest first. Line items are not loaded.
	ListByStatusPlacedBefore(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error)

	// CountByStatus returns the number of orders currently in status.
	CountByStatus(ctx context.Context, status order.Status) (int64, error)
}
