package ports

import (
	"context"

	"takeout/internal/core/domain/model/cart"
)

// CartRepository is the engine's view of a customer's shopping cart.
// The cart is either read in full or replaced in full.
type CartRepository interface {
	// List returns the customer's cart entries; an empty cart is an empty slice.
	List(ctx context.Context, customerID int64) ([]cart.Entry, error)

	// ClearAll deletes every entry of the customer's cart.
	ClearAll(ctx context.Context, customerID int64) error

	// InsertAll appends entries to the customer's cart without merging.
	InsertAll(ctx context.Context, customerID int64, entries []cart.Entry) error
}
