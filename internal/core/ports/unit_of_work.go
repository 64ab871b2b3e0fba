package ports

import (
	"context"
)

// UnitOfWorkFactory hands out one UnitOfWork per command. Units are not
// shared between goroutines.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork scopes the order, cart and address book repositories to one
// database transaction. Without Begin the repositories run on the pool,
// which is how the sweeper scans and the statistics query read.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit and Rollback fail when no transaction is open.
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CartRepository() CartRepository
	AddressBook() AddressBook
}
