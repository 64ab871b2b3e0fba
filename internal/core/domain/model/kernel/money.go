package kernel

import (
	"fmt"

	"takeout/internal/pkg/errs"
	"takeout/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places kept for amounts.
const MoneyScale = 2

var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney, MoneyFromString or MoneyFromMinorUnits")

// Money is a non-negative amount in the store currency.
//
// Example:
//
//	price, _ := kernel.MoneyFromString("15.00")
//	total := price.Mul(2)
//	fmt.Println(total)              // 30.00
//	fmt.Println(total.MinorUnits()) // 3000
type Money struct {
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney rounds amount to MoneyScale places and rejects negative values.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid",
			fmt.Errorf("%s is negative", amount.String()),
		)
	}
	return Money{
		amount: amount.Round(MoneyScale),
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// MoneyFromString parses a decimal string such as "15.00".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount is invalid", err)
	}
	return NewMoney(d)
}

// MoneyFromMinorUnits builds an amount from cents.
func MoneyFromMinorUnits(minor int64) (Money, error) {
	return NewMoney(decimal.New(minor, -MoneyScale))
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// MinorUnits returns the amount in cents, the unit payment providers charge in.
func (m Money) MinorUnits() int64 {
	return m.amount.Shift(MoneyScale).IntPart()
}

// Mul multiplies by a non-negative integer factor such as a quantity.
func (m Money) Mul(factor int) Money {
	if factor < 0 {
		factor = 0
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor))), guard: m.guard}
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: m.guard}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
