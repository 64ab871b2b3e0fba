package order_test

import (
	"testing"

	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.PendingPayment,
	order.ToBeConfirmed,
	order.Confirmed,
	order.DeliveryInProgress,
	order.Completed,
	order.Cancelled,
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range allStatuses {
		require.NoError(t, s.Validate(), s.String())
	}

	require.ErrorIs(t, order.Unknown.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.Status(42).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatus_CapabilityTable(t *testing.T) {
	tests := []struct {
		status          order.Status
		customerCancel  bool
		contactMerchant bool
		staffCancel     bool
		terminal        bool
	}{
		{order.PendingPayment, true, false, true, false},
		{order.ToBeConfirmed, true, false, true, false},
		{order.Confirmed, false, true, true, false},
		{order.DeliveryInProgress, false, true, true, false},
		{order.Completed, false, false, false, true},
		{order.Cancelled, false, false, false, true},
		{order.Unknown, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.customerCancel, tt.status.CustomerMayCancel())
			assert.Equal(t, tt.contactMerchant, tt.status.MustContactMerchant())
			assert.Equal(t, tt.staffCancel, tt.status.StaffMayCancel())
			assert.Equal(t, tt.terminal, tt.status.IsTerminal())
		})
	}
}

func TestStatus_Transitions(t *testing.T) {
	type transition struct {
		name string
		from order.Status
		to   order.Status
		fn   func(order.Status) (order.Status, error)
	}

	transitions := []transition{
		{"confirm payment", order.PendingPayment, order.ToBeConfirmed, order.Status.ConfirmPayment},
		{"accept", order.ToBeConfirmed, order.Confirmed, order.Status.Accept},
		{"reject", order.ToBeConfirmed, order.Cancelled, order.Status.Reject},
		{"dispatch", order.Confirmed, order.DeliveryInProgress, order.Status.Dispatch},
		{"complete", order.DeliveryInProgress, order.Completed, order.Status.Complete},
		{"expire payment", order.PendingPayment, order.Cancelled, order.Status.ExpirePayment},
		{"force complete", order.DeliveryInProgress, order.Completed, order.Status.ForceComplete},
	}

	for _, tr := range transitions {
		for _, from := range allStatuses {
			t.Run(tr.name+" from "+from.String(), func(t *testing.T) {
				got, err := tr.fn(from)

				if from == tr.from {
					require.NoError(t, err)
					assert.Equal(t, tr.to, got)
					return
				}
				require.ErrorIs(t, err, errs.ErrPreconditionFailed)
				require.ErrorIs(t, err, order.ErrInvalidStatus)
				assert.Equal(t, order.Unknown, got)
			})
		}
	}
}

func TestStatus_CancelByStaff(t *testing.T) {
	for _, from := range allStatuses {
		t.Run(from.String(), func(t *testing.T) {
			got, err := from.CancelByStaff()

			if from.IsTerminal() {
				require.ErrorIs(t, err, order.ErrInvalidStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, got)
		})
	}
}

func TestStatus_CancelByCustomer(t *testing.T) {
	t.Run("allowed before acceptance", func(t *testing.T) {
		for _, from := range []order.Status{order.PendingPayment, order.ToBeConfirmed} {
			got, err := from.CancelByCustomer()
			require.NoError(t, err)
			assert.Equal(t, order.Cancelled, got)
		}
	})

	t.Run("accepted orders require the merchant", func(t *testing.T) {
		for _, from := range []order.Status{order.Confirmed, order.DeliveryInProgress} {
			_, err := from.CancelByCustomer()
			require.ErrorIs(t, err, order.ErrContactMerchant)
			require.ErrorIs(t, err, errs.ErrPreconditionFailed)
			assert.NotErrorIs(t, err, order.ErrInvalidStatus)
		}
	})

	t.Run("terminal orders are invalid", func(t *testing.T) {
		for _, from := range []order.Status{order.Completed, order.Cancelled} {
			_, err := from.CancelByCustomer()
			require.ErrorIs(t, err, order.ErrInvalidStatus)
			assert.NotErrorIs(t, err, order.ErrContactMerchant)
		}
	})
}

func TestPayStatus(t *testing.T) {
	for _, p := range []order.PayStatus{order.Unpaid, order.Paid, order.Refund, order.RefundPending} {
		require.NoError(t, p.Validate(), p.String())
	}
	require.ErrorIs(t, order.UnknownPayStatus.Validate(), errs.ErrValueIsInvalid)
	require.ErrorIs(t, order.PayStatus(9).Validate(), errs.ErrValueIsInvalid)
	assert.Equal(t, "RefundPending", order.RefundPending.String())
	assert.Equal(t, "Unknown", order.PayStatus(9).String())

	// Stored codes.
	assert.Equal(t, 1, int(order.Unpaid))
	assert.Equal(t, 2, int(order.Paid))
	assert.Equal(t, 3, int(order.Refund))
	assert.Equal(t, 4, int(order.RefundPending))
}
