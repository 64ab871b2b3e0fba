package cart

import (
	"errors"
	"fmt"
	"strings"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrEntryIsNotConstructed = errs.NewValueIsRequiredError("cart entry must be created via NewEntry")

// Product identifies what an entry refers to in the catalog. Exactly one of
// DishID or SetmealID is normally set; the engine does not interpret them.
type Product struct {
	DishID    *int64
	SetmealID *int64
	Flavor    string
	Image     string
}

// Entry is one line of a customer's cart.
type Entry struct {
	name      string
	quantity  int
	unitPrice kernel.Money
	product   Product
	guard     guard.ConstructorGuard
}

func NewEntry(name string, quantity int, unitPrice kernel.Money, product Product) (Entry, error) {
	var errName, errQuantity error
	name = strings.TrimSpace(name)
	if name == "" {
		errName = errs.NewValueIsRequiredError("name")
	}
	if quantity < 1 {
		errQuantity = errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is less than 1", quantity))
	}
	if err := errors.Join(errName, errQuantity, unitPrice.Validate()); err != nil {
		return Entry{}, err
	}

	return Entry{
		name:      name,
		quantity:  quantity,
		unitPrice: unitPrice,
		product:   product,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (e Entry) Validate() error {
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e Entry) Name() string {
	return e.name
}

func (e Entry) Quantity() int {
	return e.quantity
}

func (e Entry) UnitPrice() kernel.Money {
	return e.unitPrice
}

func (e Entry) Product() Product {
	return e.product
}

// Subtotal is unit price times quantity.
func (e Entry) Subtotal() kernel.Money {
	return e.unitPrice.Mul(e.quantity)
}
