package kernel

import (
	"errors"
	"strings"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrDeliveryAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"delivery address must be created via NewDeliveryAddress")

// DeliveryAddress is the snapshot of an address book entry taken at submission.
// Later edits to the address book do not affect orders already placed.
type DeliveryAddress struct {
	consignee string
	phone     string
	detail    string
	guard     guard.ConstructorGuard
}

func NewDeliveryAddress(consignee, phone, detail string) (DeliveryAddress, error) {
	a := DeliveryAddress{
		consignee: strings.TrimSpace(consignee),
		phone:     strings.TrimSpace(phone),
		detail:    strings.TrimSpace(detail),
		guard:     guard.NewConstructorGuard(),
	}

	var errConsignee, errPhone, errDetail error
	if a.consignee == "" {
		errConsignee = errs.NewValueIsRequiredError("consignee")
	}
	if a.phone == "" {
		errPhone = errs.NewValueIsRequiredError("phone")
	}
	if a.detail == "" {
		errDetail = errs.NewValueIsRequiredError("address detail")
	}
	if err := errors.Join(errConsignee, errPhone, errDetail); err != nil {
		return DeliveryAddress{}, err
	}

	return a, nil
}

func (a DeliveryAddress) Validate() error {
	return a.guard.Validate(ErrDeliveryAddressIsNotConstructed)
}

func (a DeliveryAddress) Consignee() string {
	return a.consignee
}

func (a DeliveryAddress) Phone() string {
	return a.phone
}

func (a DeliveryAddress) Detail() string {
	return a.detail
}
