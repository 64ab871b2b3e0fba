// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// Every order transition, user-driven or forced by the sweeper, goes through
// a handler in this package and ends in a conditional update keyed on the
// order's prior status.
package commands

import (
	"context"

	"takeout/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// CartRepoFactory provides access to the cart within a transaction.
	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	// AddressBookFactory provides access to the address book within a transaction.
	AddressBookFactory interface {
		AddressBook() ports.AddressBook
	}

	// OrderUoW manages transactions for order-only operations.
	// Used by every status transition.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// CartUoW manages transactions that read orders and write the cart.
	// Used by reorder.
	CartUoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
	}

	// CartUoWFactory creates new cart unit of work instances.
	CartUoWFactory interface {
		Create() CartUoW
	}

	// UoW manages transactions across orders, the cart and the address book.
	// Used by submission, which must create the order and clear the cart atomically.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   address, err := uow.AddressBook().Get(ctx, customerID, addressID)
	//   entries, err := uow.CartRepository().List(ctx, customerID)
	//   // ... add the order, clear the cart
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		AddressBookFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
