package order_test

import (
	"testing"

	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItem(t *testing.T) {
	price, _ := kernel.MoneyFromString("15.00")
	setmealID := int64(3)
	entry, err := cart.NewEntry("Family Set", 2, price, cart.Product{SetmealID: &setmealID, Image: "set.png"})
	require.NoError(t, err)

	t.Run("copies entry fields", func(t *testing.T) {
		item, err := order.NewLineItem(entry)

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, int64(0), item.ID())
		assert.Equal(t, "Family Set", item.Name())
		assert.Equal(t, 2, item.Quantity())
		assert.True(t, item.UnitPrice().IsEqual(price))
		assert.Equal(t, "set.png", item.Product().Image)
		assert.Equal(t, "Family Set*2", item.String())
	})

	t.Run("round trips into a cart entry", func(t *testing.T) {
		item, _ := order.NewLineItem(entry)

		back, err := item.ToCartEntry()

		require.NoError(t, err)
		assert.Equal(t, entry.Name(), back.Name())
		assert.Equal(t, entry.Quantity(), back.Quantity())
		assert.True(t, entry.UnitPrice().IsEqual(back.UnitPrice()))
		assert.Equal(t, setmealID, *back.Product().SetmealID)
	})

	t.Run("rejects unconstructed entry", func(t *testing.T) {
		_, err := order.NewLineItem(cart.Entry{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("restore keeps id", func(t *testing.T) {
		item, err := order.RestoreLineItem(11, "Rice", 1, price, cart.Product{})

		require.NoError(t, err)
		assert.Equal(t, int64(11), item.ID())
	})
}
