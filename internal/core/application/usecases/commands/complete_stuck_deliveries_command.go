package commands

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrCompleteStuckDeliveriesCommandIsNotConstructed = errors.New(
	"CompleteStuckDeliveriesCommand must be created via NewCompleteStuckDeliveriesCommand constructor",
)

// CompleteStuckDeliveriesCommand completes orders left in delivery for longer than timeout.
// A zero timeout selects DefaultStuckAfter.
type CompleteStuckDeliveriesCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

func NewCompleteStuckDeliveriesCommand(timeout time.Duration) (CompleteStuckDeliveriesCommand, error) {
	if timeout == 0 {
		timeout = DefaultStuckAfter
	}
	if timeout < 0 {
		return CompleteStuckDeliveriesCommand{}, errs.NewValueIsInvalidErrorWithCause("timeout", fmt.Errorf("%s is negative", timeout))
	}

	return CompleteStuckDeliveriesCommand{
		timeout: timeout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteStuckDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCompleteStuckDeliveriesCommandIsNotConstructed)
}

func (c CompleteStuckDeliveriesCommand) Timeout() time.Duration {
	return c.timeout
}
