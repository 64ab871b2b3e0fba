package commands

import (
	"context"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/pkg/errs"
)

// ReorderCommandHandler copies every line item of a past order into the
// customer's cart as a new entry. Existing cart contents are kept and not
// merged, so reordering twice doubles the entries.
type ReorderCommandHandler struct {
	uowFactory CartUoWFactory
}

func NewReorderCommandHandler(uowFactory CartUoWFactory) ReorderCommandHandler {
	return ReorderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the number of entries inserted.
func (h ReorderCommandHandler) Handle(ctx context.Context, cmd ReorderCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return 0, err
	}
	if err = requireOwner(o, cmd.CustomerID()); err != nil {
		return 0, err
	}

	items := o.Items()
	if len(items) == 0 {
		return 0, errs.NewObjectNotFoundError("orderDetail", cmd.OrderID())
	}

	entries := make([]cart.Entry, 0, len(items))
	for _, item := range items {
		entry, entryErr := item.ToCartEntry()
		if entryErr != nil {
			return 0, entryErr
		}
		entries = append(entries, entry)
	}

	if err = uow.CartRepository().InsertAll(ctx, cmd.CustomerID(), entries); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(entries), nil
}
