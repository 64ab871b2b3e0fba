package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "takeout/internal/adapters/out/postgres"
	"takeout/internal/adapters/out/postgres/addressrepo"
	"takeout/internal/core/domain/model/cart"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/core/ports"
	"takeout/internal/pkg/clock"
	"takeout/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var suiteNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// UnitOfWorkIntegrationTestSuite exercises transactions spanning the order,
// cart and address book tables on a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(postgres_adapter.Models()...))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db, clock.NewFixed(suiteNow))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_details, orders, shopping_cart, address_book RESTART IDENTITY").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.CartRepository())
	suite.NotNil(uow1.AddressBook())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "second Begin keeps the open transaction")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SubmissionCommitsOrderAndClearsCart() {
	ctx := suite.T().Context()
	suite.seedCart(42)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	entries, err := uow.CartRepository().List(ctx, 42)
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)

	o := suite.newOrder(entries)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.CartRepository().ClearAll(ctx, 42))
	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	stored, err := fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Len(stored.Items(), 2)

	left, err := fresh.CartRepository().List(ctx, 42)
	suite.Require().NoError(err)
	suite.Empty(left)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackKeepsCart() {
	ctx := suite.T().Context()
	suite.seedCart(42)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	entries, err := uow.CartRepository().List(ctx, 42)
	suite.Require().NoError(err)
	o := suite.newOrder(entries)
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.CartRepository().ClearAll(ctx, 42))
	suite.Require().NoError(uow.Rollback(ctx))

	fresh := suite.factory.Create()
	_, err = fresh.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	left, err := fresh.CartRepository().List(ctx, 42)
	suite.Require().NoError(err)
	suite.Len(left, 2)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AddressBookIsCustomerScoped() {
	ctx := suite.T().Context()
	dto := addressrepo.AddressBookDTO{UserID: 42, Consignee: "Li Lei", Phone: "13800000000", Detail: "1 Zhongshan Rd"}
	suite.Require().NoError(suite.db.Create(&dto).Error)

	book := suite.factory.Create().AddressBook()

	address, err := book.Get(ctx, 42, dto.ID)
	suite.Require().NoError(err)
	suite.Equal("1 Zhongshan Rd", address.Detail())

	_, err = book.Get(ctx, 43, dto.ID)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ReorderAppendsWithoutMerging() {
	ctx := suite.T().Context()
	suite.seedCart(42)

	uow := suite.factory.Create()
	entries, err := uow.CartRepository().List(ctx, 42)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.CartRepository().InsertAll(ctx, 42, entries))

	all, err := uow.CartRepository().List(ctx, 42)
	suite.Require().NoError(err)
	suite.Len(all, 4)
}

func (suite *UnitOfWorkIntegrationTestSuite) seedCart(customerID int64) {
	price, err := kernel.MoneyFromString("16.00")
	suite.Require().NoError(err)
	first, err := cart.NewEntry("Kung Pao Chicken", 2, price, cart.Product{Flavor: "medium"})
	suite.Require().NoError(err)
	second, err := cart.NewEntry("Rice", 1, price, cart.Product{})
	suite.Require().NoError(err)

	repo := suite.factory.Create().CartRepository()
	suite.Require().NoError(repo.InsertAll(suite.T().Context(), customerID, []cart.Entry{first, second}))
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(entries []cart.Entry) *order.Order {
	items := make([]order.LineItem, 0, len(entries))
	for _, entry := range entries {
		item, err := order.NewLineItem(entry)
		suite.Require().NoError(err)
		items = append(items, item)
	}

	address, err := kernel.NewDeliveryAddress("Li Lei", "13800000000", "1 Zhongshan Rd")
	suite.Require().NoError(err)
	amount, err := kernel.MoneyFromString("48.00")
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewOrderNumber(suiteNow), 42, address, amount, "", items, suiteNow)
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
