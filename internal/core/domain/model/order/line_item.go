package order

import (
	"fmt"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrLineItemIsNotConstructed = errs.NewValueIsRequiredError(
	"line item must be created via NewLineItem or RestoreLineItem")

// LineItem is the frozen copy of one cart entry taken at submission.
// It is never updated after the owning order is created.
type LineItem struct {
	id        int64
	name      string
	quantity  int
	unitPrice kernel.Money
	product   cart.Product
	guard     guard.ConstructorGuard
}

// NewLineItem freezes a cart entry.
func NewLineItem(entry cart.Entry) (LineItem, error) {
	if err := entry.Validate(); err != nil {
		return LineItem{}, err
	}
	return LineItem{
		name:      entry.Name(),
		quantity:  entry.Quantity(),
		unitPrice: entry.UnitPrice(),
		product:   entry.Product(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreLineItem rebuilds a persisted line item.
func RestoreLineItem(id int64, name string, quantity int, unitPrice kernel.Money, product cart.Product) (LineItem, error) {
	entry, err := cart.NewEntry(name, quantity, unitPrice, product)
	if err != nil {
		return LineItem{}, err
	}
	item, _ := NewLineItem(entry)
	item.id = id
	return item, nil
}

func (li LineItem) Validate() error {
	return li.guard.Validate(ErrLineItemIsNotConstructed)
}

// ID is the store-assigned identifier, 0 before the order is persisted.
func (li LineItem) ID() int64 {
	return li.id
}

func (li LineItem) Name() string {
	return li.name
}

func (li LineItem) Quantity() int {
	return li.quantity
}

func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

func (li LineItem) Product() cart.Product {
	return li.product
}

// ToCartEntry copies the item forward into a new cart entry for reorder.
func (li LineItem) ToCartEntry() (cart.Entry, error) {
	return cart.NewEntry(li.name, li.quantity, li.unitPrice, li.product)
}

// String renders the item as name*quantity.
func (li LineItem) String() string {
	return fmt.Sprintf("%s*%d", li.name, li.quantity)
}
