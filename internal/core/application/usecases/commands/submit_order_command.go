package commands

import (
	"errors"

	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrSubmitOrderCommandIsNotConstructed = errors.New(
	"SubmitOrderCommand must be created via NewSubmitOrderCommand constructor",
)

// SubmitOrderCommand turns a customer's cart into an order.
//
// Example:
//
//	amount, _ := kernel.MoneyFromString("36.00")
//	cmd, err := NewSubmitOrderCommand(customerID, addressID, amount, "no chili")
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	result, err := handler.Handle(ctx, cmd)
type SubmitOrderCommand struct { //nolint:recvcheck //using for validation
	customerID int64
	addressID  int64
	amount     kernel.Money
	remark     string

	guard guard.ConstructorGuard
}

func NewSubmitOrderCommand(customerID, addressID int64, amount kernel.Money, remark string) (SubmitOrderCommand, error) {
	cmd := SubmitOrderCommand{
		remark: remark,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomerID(customerID),
		cmd.setAddressID(addressID),
		cmd.setAmount(amount),
	); err != nil {
		return SubmitOrderCommand{}, err
	}

	return cmd, nil
}

func (c SubmitOrderCommand) Validate() error {
	return c.guard.Validate(ErrSubmitOrderCommandIsNotConstructed)
}

func (c SubmitOrderCommand) CustomerID() int64 {
	return c.customerID
}

func (c SubmitOrderCommand) AddressID() int64 {
	return c.addressID
}

func (c SubmitOrderCommand) Amount() kernel.Money {
	return c.amount
}

func (c SubmitOrderCommand) Remark() string {
	return c.remark
}

func (c *SubmitOrderCommand) setCustomerID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("customerId")
	}
	c.customerID = id
	return nil
}

func (c *SubmitOrderCommand) setAddressID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsRequiredError("addressBookId")
	}
	c.addressID = id
	return nil
}

func (c *SubmitOrderCommand) setAmount(amount kernel.Money) error {
	if err := amount.Validate(); err != nil {
		return err
	}
	c.amount = amount
	return nil
}
