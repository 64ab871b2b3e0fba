package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"takeout/internal/adapters/out/postgres/orderrepo"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite runs the repository against a real
// PostgreSQL container.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderDetailDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_details, orders RESTART IDENTITY").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
	suite.now = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_AssignsIDAndStoresItems() {
	ctx := suite.T().Context()
	o := suite.newOrder(suite.now)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Positive(o.ID())

	var items int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDetailDTO{}).Where("order_id = ?", o.ID()).Count(&items).Error)
	suite.Equal(int64(2), items)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RestoresAggregate() {
	ctx := suite.T().Context()
	o := suite.newOrder(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(o.Number().String(), got.Number().String())
	suite.Equal(int64(42), got.CustomerID())
	suite.Equal("36.50", got.Amount().String())
	suite.Equal("less spicy", got.Remark())
	suite.Equal("Li Lei", got.Address().Consignee())
	suite.Equal(order.PendingPayment, got.Status())
	suite.Equal(order.Unpaid, got.PayStatus())
	suite.True(got.OrderTime().Equal(suite.now))
	suite.Nil(got.CheckoutTime())
	suite.Equal("Kung Pao Chicken*2;Rice*1;", got.Summary())

	items := got.Items()
	suite.Require().Len(items, 2)
	suite.Positive(items[0].ID())
	suite.Require().NotNil(items[0].Product().DishID)
	suite.Equal(int64(11), *items[0].Product().DishID)
	suite.Equal("medium", items[0].Product().Flavor)
	suite.Nil(items[1].Product().DishID)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(suite.T().Context(), 999)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := suite.T().Context()
	o := suite.newOrder(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.GetByNumber(ctx, o.Number())
	suite.Require().NoError(err)
	suite.Equal(o.ID(), got.ID())
	suite.Len(got.Items(), 2)

	unknown, _ := kernel.OrderNumberFromString("missing")
	_, err = suite.repository.GetByNumber(ctx, unknown)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ConditionalOnStatus() {
	ctx := suite.T().Context()
	o := suite.newOrder(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	paidAt := suite.now.Add(time.Minute)
	suite.Require().NoError(o.ConfirmPayment("pi_123", paidAt))
	suite.Require().NoError(suite.repository.Update(ctx, o, order.PendingPayment))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.ToBeConfirmed, got.Status())
	suite.Equal(order.Paid, got.PayStatus())
	suite.Equal("pi_123", got.PaymentToken())
	suite.Require().NotNil(got.CheckoutTime())
	suite.True(got.CheckoutTime().Equal(paidAt))

	// A second writer still holding the PendingPayment copy loses.
	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(stale.Accept(paidAt))
	err = suite.repository.Update(ctx, stale, order.PendingPayment)
	suite.Require().ErrorIs(err, errs.ErrConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	ctx := suite.T().Context()
	o := suite.newOrder(suite.now)
	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.Require().NoError(suite.db.Exec("DELETE FROM orders").Error)

	suite.Require().NoError(o.ExpirePayment(suite.now))
	err := suite.repository.Update(ctx, o, order.PendingPayment)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByStatusPlacedBefore() {
	ctx := suite.T().Context()
	old := suite.newOrder(suite.now.Add(-20 * time.Minute))
	boundary := suite.newOrder(suite.now.Add(-15 * time.Minute))
	fresh := suite.newOrder(suite.now.Add(-5 * time.Minute))
	paid := suite.newOrder(suite.now.Add(-30 * time.Minute))
	suite.Require().NoError(paid.ConfirmPayment("pi_1", suite.now))
	for _, o := range []*order.Order{fresh, boundary, old, paid} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	got, err := suite.repository.ListByStatusPlacedBefore(ctx, order.PendingPayment, suite.now.Add(-15*time.Minute))
	suite.Require().NoError(err)

	suite.Require().Len(got, 2)
	suite.Equal(old.ID(), got[0].ID())
	suite.Equal(boundary.ID(), got[1].ID())
	suite.Empty(got[0].Items())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountByStatus() {
	ctx := suite.T().Context()
	for range 3 {
		suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(suite.now)))
	}

	pending, err := suite.repository.CountByStatus(ctx, order.PendingPayment)
	suite.Require().NoError(err)
	suite.Equal(int64(3), pending)

	confirmed, err := suite.repository.CountByStatus(ctx, order.Confirmed)
	suite.Require().NoError(err)
	suite.Zero(confirmed)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(placedAt time.Time) *order.Order {
	address, err := kernel.NewDeliveryAddress("Li Lei", "13800000000", "1 Zhongshan Rd")
	suite.Require().NoError(err)
	amount, err := kernel.MoneyFromString("36.50")
	suite.Require().NoError(err)

	dishID := int64(11)
	first := suite.newItem("Kung Pao Chicken", 2, "16.00", cart.Product{DishID: &dishID, Flavor: "medium"})
	second := suite.newItem("Rice", 1, "4.50", cart.Product{})

	o, err := order.NewOrder(kernel.NewOrderNumber(placedAt), 42, address, amount, "less spicy",
		[]order.LineItem{first, second}, placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) newItem(name string, qty int, price string, product cart.Product) order.LineItem {
	p, err := kernel.MoneyFromString(price)
	suite.Require().NoError(err)
	entry, err := cart.NewEntry(name, qty, p, product)
	suite.Require().NoError(err)
	item, err := order.NewLineItem(entry)
	suite.Require().NoError(err)
	return item
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
