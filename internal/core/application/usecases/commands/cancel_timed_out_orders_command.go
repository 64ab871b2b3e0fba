package commands

import (
	"errors"
	"fmt"
	"time"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"
)

var ErrCancelTimedOutOrdersCommandIsNotConstructed = errors.New(
	"CancelTimedOutOrdersCommand must be created via NewCancelTimedOutOrdersCommand constructor",
)

// CancelTimedOutOrdersCommand cancels orders left unpaid for longer than timeout.
// A zero timeout selects DefaultUnpaidAfter.
type CancelTimedOutOrdersCommand struct { //nolint:recvcheck //using for validation
	timeout time.Duration

	guard guard.ConstructorGuard
}

func NewCancelTimedOutOrdersCommand(timeout time.Duration) (CancelTimedOutOrdersCommand, error) {
	if timeout == 0 {
		timeout = DefaultUnpaidAfter
	}
	if timeout < 0 {
		return CancelTimedOutOrdersCommand{}, errs.NewValueIsInvalidErrorWithCause("timeout", fmt.Errorf("%s is negative", timeout))
	}

	return CancelTimedOutOrdersCommand{
		timeout: timeout,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CancelTimedOutOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelTimedOutOrdersCommandIsNotConstructed)
}

func (c CancelTimedOutOrdersCommand) Timeout() time.Duration {
	return c.timeout
}
