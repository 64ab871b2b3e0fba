package commands_test

import (
	"context"
	"errors"
	"testing"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type simpleTransition struct {
	name   string
	from   order.Status
	to     order.Status
	handle func(ctx context.Context, f *MockOrderUoWFactory, p *MockEventPublisher, id int64) error
}

func simpleTransitions() []simpleTransition {
	return []simpleTransition{
		{
			name: "accept",
			from: order.ToBeConfirmed,
			to:   order.Confirmed,
			handle: func(ctx context.Context, f *MockOrderUoWFactory, p *MockEventPublisher, id int64) error {
				cmd, err := commands.NewAcceptOrderCommand(id)
				if err != nil {
					return err
				}
				return commands.NewAcceptOrderCommandHandler(f, p, testClock(), discardLogger()).Handle(ctx, cmd)
			},
		},
		{
			name: "dispatch",
			from: order.Confirmed,
			to:   order.DeliveryInProgress,
			handle: func(ctx context.Context, f *MockOrderUoWFactory, p *MockEventPublisher, id int64) error {
				cmd, err := commands.NewDispatchOrderCommand(id)
				if err != nil {
					return err
				}
				return commands.NewDispatchOrderCommandHandler(f, p, testClock(), discardLogger()).Handle(ctx, cmd)
			},
		},
		{
			name: "complete",
			from: order.DeliveryInProgress,
			to:   order.Completed,
			handle: func(ctx context.Context, f *MockOrderUoWFactory, p *MockEventPublisher, id int64) error {
				cmd, err := commands.NewCompleteOrderCommand(id)
				if err != nil {
					return err
				}
				return commands.NewCompleteOrderCommandHandler(f, p, testClock(), discardLogger()).Handle(ctx, cmd)
			},
		},
	}
}

func TestSimpleTransitionHandlers(t *testing.T) {
	for _, tr := range simpleTransitions() {
		t.Run(tr.name+" succeeds from "+tr.from.String(), func(t *testing.T) {
			ctx := t.Context()
			o := storedOrder(t, 7, 42, tr.from, order.Paid)
			repo := new(MockOrderRepository)
			factory, uow := orderUoW(repo)
			publisher := new(MockEventPublisher)

			mock.InOrder(
				repo.On("Get", ctx, int64(7)).Return(o, nil).Once(),
				repo.On("Update", ctx, o, tr.from).Return(nil).Once(),
			)
			publisher.On("PublishStatusChanged", ctx, mock.MatchedBy(func(e order.StatusChanged) bool {
				return e.OrderID == 7 && e.Previous == tr.from && e.Current == tr.to
			})).Return(nil).Once()

			require.NoError(t, tr.handle(ctx, factory, publisher, 7))

			assert.Equal(t, tr.to, o.Status())
			uow.AssertCalled(t, "Commit", ctx)
			repo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})

		t.Run(tr.name+" rejects other statuses without writing", func(t *testing.T) {
			ctx := t.Context()
			o := storedOrder(t, 7, 42, order.Cancelled, order.Unpaid)
			repo := new(MockOrderRepository)
			factory, uow := orderUoW(repo)
			publisher := new(MockEventPublisher)

			repo.On("Get", ctx, int64(7)).Return(o, nil).Once()

			err := tr.handle(ctx, factory, publisher, 7)

			require.ErrorIs(t, err, order.ErrInvalidStatus)
			assert.Equal(t, order.Cancelled, o.Status())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Begin", mock.Anything)
			publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
		})

		t.Run(tr.name+" surfaces lost race as conflict", func(t *testing.T) {
			ctx := t.Context()
			o := storedOrder(t, 7, 42, tr.from, order.Paid)
			repo := new(MockOrderRepository)
			factory, uow := orderUoW(repo)
			publisher := new(MockEventPublisher)

			repo.On("Get", ctx, int64(7)).Return(o, nil).Once()
			repo.On("Update", ctx, o, tr.from).Return(errs.NewConflictError("order", int64(7))).Once()

			err := tr.handle(ctx, factory, publisher, 7)

			require.ErrorIs(t, err, errs.ErrConflict)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			publisher.AssertNotCalled(t, "PublishStatusChanged", mock.Anything, mock.Anything)
		})
	}
}

func TestAcceptOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	repo := new(MockOrderRepository)
	factory, _ := orderUoW(repo)
	repo.On("Get", ctx, int64(9)).Return(nil, errs.NewObjectNotFoundError("orderId", int64(9))).Once()

	cmd, _ := commands.NewAcceptOrderCommand(9)
	err := commands.NewAcceptOrderCommandHandler(factory, acceptingPublisher(), testClock(), discardLogger()).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAcceptOrderCommandHandler_Handle_PublishFailureIsNotReturned(t *testing.T) {
	ctx := t.Context()
	o := storedOrder(t, 7, 42, order.ToBeConfirmed, order.Paid)
	repo := new(MockOrderRepository)
	factory, _ := orderUoW(repo)
	publisher := new(MockEventPublisher)

	repo.On("Get", ctx, int64(7)).Return(o, nil).Once()
	repo.On("Update", ctx, o, order.ToBeConfirmed).Return(nil).Once()
	publisher.On("PublishStatusChanged", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	cmd, _ := commands.NewAcceptOrderCommand(7)
	err := commands.NewAcceptOrderCommandHandler(factory, publisher, testClock(), discardLogger()).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, o.Status())
}

func TestOrderIDCommands_Validation(t *testing.T) {
	_, err := commands.NewAcceptOrderCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewRejectOrderCommand(7, "  ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "rejection reason")

	_, err = commands.NewCancelOrderByStaffCommand(0, "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "orderId")
	assert.Contains(t, err.Error(), "cancel reason")

	_, err = commands.NewCancelOrderByCustomerCommand(0, 7)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	var unconstructed commands.DispatchOrderCommand
	require.ErrorIs(t, unconstructed.Validate(), commands.ErrDispatchOrderCommandIsNotConstructed)
}
