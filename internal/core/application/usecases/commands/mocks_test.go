package commands_test

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"testing"
	"time"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order, expected order.Status) error {
	args := m.Called(ctx, o, expected)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByNumber(ctx context.Context, number kernel.OrderNumber) (*order.Order, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByStatusPlacedBefore(
	ctx context.Context,
	status order.Status,
	cutoff time.Time,
) ([]*order.Order, error) {
	args := m.Called(ctx, status, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByStatus(ctx context.Context, status order.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) List(ctx context.Context, customerID int64) ([]cart.Entry, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Entry), args.Error(1)
}

func (m *MockCartRepository) ClearAll(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

func (m *MockCartRepository) InsertAll(ctx context.Context, customerID int64, entries []cart.Entry) error {
	args := m.Called(ctx, customerID, entries)
	return args.Error(0)
}

type MockAddressBook struct{ mock.Mock }

func (m *MockAddressBook) Get(ctx context.Context, customerID, addressID int64) (kernel.DeliveryAddress, error) {
	args := m.Called(ctx, customerID, addressID)
	return args.Get(0).(kernel.DeliveryAddress), args.Error(1)
}

// MockUoW satisfies every unit of work shape the handlers ask for.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) CartRepository() ports.CartRepository {
	args := m.Called()
	return args.Get(0).(ports.CartRepository)
}

func (m *MockUoW) AddressBook() ports.AddressBook {
	args := m.Called()
	return args.Get(0).(ports.AddressBook)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCartUoWFactory struct{ mock.Mock }

func (m *MockCartUoWFactory) Create() commands.CartUoW {
	args := m.Called()
	return args.Get(0).(commands.CartUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) Pay(ctx context.Context, req ports.PaymentRequest) (ports.PaymentReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.PaymentReceipt), args.Error(1)
}

func (m *MockPaymentGateway) Refund(ctx context.Context, req ports.RefundRequest) (ports.RefundReceipt, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(ports.RefundReceipt), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, event order.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func testClock() clock.Clock {
	return clock.NewFixed(testNow)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// acceptingPublisher records every event and never fails.
func acceptingPublisher() *MockEventPublisher {
	p := new(MockEventPublisher)
	p.On("PublishStatusChanged", mock.Anything, mock.Anything).Return(nil).Maybe()
	return p
}

// orderUoW returns a factory that always hands out the same unit of work
// bound to repo. Begin, Commit and Rollback succeed.
func orderUoW(repo *MockOrderRepository) (*MockOrderUoWFactory, *MockUoW) {
	uow := new(MockUoW)
	uow.On("OrderRepository").Return(repo).Maybe()
	uow.On("Begin", mock.Anything).Return(nil).Maybe()
	uow.On("Commit", mock.Anything).Return(nil).Maybe()
	uow.On("Rollback", mock.Anything).Return(nil).Maybe()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow)
	return factory, uow
}

func testEntry(t *testing.T, name string, qty int, price string) cart.Entry {
	t.Helper()
	p, err := kernel.MoneyFromString(price)
	require.NoError(t, err)
	e, err := cart.NewEntry(name, qty, p, cart.Product{})
	require.NoError(t, err)
	return e
}

// storedOrder builds an order as a repository would return it.
func storedOrder(t *testing.T, id, customerID int64, status order.Status, pay order.PayStatus) *order.Order {
	t.Helper()
	number, err := kernel.OrderNumberFromString("01HXTEST" + strconv.FormatInt(id, 10))
	require.NoError(t, err)
	address, err := kernel.NewDeliveryAddress("Li Lei", "13800000000", "1 Zhongshan Rd")
	require.NoError(t, err)
	amount, err := kernel.MoneyFromString("36.00")
	require.NoError(t, err)
	item, err := order.RestoreLineItem(id*10, "Kung Pao Chicken", 2, amount, cart.Product{})
	require.NoError(t, err)

	token := ""
	if pay != order.Unpaid {
		token = "pi_stored"
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:           id,
		Number:       number,
		CustomerID:   customerID,
		Address:      address,
		Amount:       amount,
		OrderTime:    testNow.Add(-30 * time.Minute),
		Status:       status,
		PayStatus:    pay,
		PaymentToken: token,
		Items:        []order.LineItem{item},
	})
	require.NoError(t, err)
	return o
}
