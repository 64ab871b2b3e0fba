package ports

import (
	"context"

	"takeout/internal/core/domain/model/kernel"
)

// AddressBook resolves a customer's saved address.
type AddressBook interface {
	// Get returns the address owned by customerID, or errs.ObjectNotFoundError.
	Get(ctx context.Context, customerID, addressID int64) (kernel.DeliveryAddress, error)
}
