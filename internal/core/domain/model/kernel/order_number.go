package kernel

import (
	"fmt"
	"time"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"

	"github.com/oklog/ulid/v2"
)

// OrderNumberMaxLength bounds restored numbers; generated ones are 26 characters.
const OrderNumberMaxLength = 64

var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"order number must be created via NewOrderNumber or OrderNumberFromString")

// OrderNumber is the caller-visible order token. New numbers are ULIDs whose
// timestamp component is the submission time, so they sort by submission.
type OrderNumber struct { //nolint:recvcheck // value object
	value string
	guard guard.ConstructorGuard
}

// NewOrderNumber generates a fresh number stamped with now.
func NewOrderNumber(now time.Time) OrderNumber {
	id := ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy())
	return OrderNumber{
		value: id.String(),
		guard: guard.NewConstructorGuard(),
	}
}

// OrderNumberFromString restores a stored or caller-supplied number.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if s == "" {
		return OrderNumber{}, errs.NewValueIsRequiredError("order number")
	}
	if len(s) > OrderNumberMaxLength {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("order number length", len(s), 1, OrderNumberMaxLength)
	}
	return OrderNumber{value: s, guard: guard.NewConstructorGuard()}, nil
}

func (n OrderNumber) Validate() error {
	return n.guard.Validate(ErrOrderNumberIsNotConstructed)
}

// Time returns the embedded submission instant for ULID numbers.
func (n OrderNumber) Time() (time.Time, error) {
	id, err := ulid.ParseStrict(n.value)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause("order number", fmt.Errorf("%q is not a ULID: %w", n.value, err))
	}
	return ulid.Time(id.Time()), nil
}

func (n OrderNumber) String() string {
	return n.value
}

func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}
