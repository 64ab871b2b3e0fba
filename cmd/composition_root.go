package cmd

import (
	"errors"
	"log/slog"

	httpin "takeout/internal/adapters/in/http"
	"takeout/internal/adapters/out/kafka"
	"takeout/internal/adapters/out/payment"
	"takeout/internal/adapters/out/postgres"
	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/ports"
	"takeout/internal/jobs"
	"takeout/internal/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	clock      clock.Clock
	gateway    ports.PaymentGateway
	publisher  *kafka.OrderEventPublisher
	registry   *prometheus.Registry
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	clk := clock.NewSystem(config.Location)

	var gateway ports.PaymentGateway
	switch config.PaymentProvider {
	case PaymentProviderStripe:
		stripeGateway, err := payment.NewStripeGateway(payment.StripeConfig{
			APIKey:        config.StripeAPIKey,
			Currency:      config.StripeCurrency,
			PaymentMethod: config.StripePaymentMethod,
		}, logger)
		if err != nil {
			return CompositionRoot{}, err
		}
		gateway = stripeGateway
	default:
		logger.Warn("using the simulated payment gateway")
		gateway = payment.NewSimulatedGateway()
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB, clk),
		clock:      clk,
		gateway:    gateway,
		publisher:  kafka.NewOrderEventPublisher(config.KafkaHost, config.KafkaOrderChangedTopic, logger),
		registry:   registry,
		logger:     logger,
	}, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitOrderCommandHandler(f, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	return commands.NewConfirmPaymentCommandHandler(c.orderUoWFactory(), c.gateway, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateRejectOrderCommandHandler() commands.RejectOrderCommandHandler {
	return commands.NewRejectOrderCommandHandler(c.orderUoWFactory(), c.gateway, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderByStaffCommandHandler() commands.CancelOrderByStaffCommandHandler {
	return commands.NewCancelOrderByStaffCommandHandler(c.orderUoWFactory(), c.gateway, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderByCustomerCommandHandler() commands.CancelOrderByCustomerCommandHandler {
	return commands.NewCancelOrderByCustomerCommandHandler(c.orderUoWFactory(), c.gateway, c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompleteOrderCommandHandler() commands.CompleteOrderCommandHandler {
	return commands.NewCompleteOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateReorderCommandHandler() commands.ReorderCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReorderCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelTimedOutOrdersCommandHandler() commands.CancelTimedOutOrdersCommandHandler {
	return commands.NewCancelTimedOutOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateCompleteStuckDeliveriesCommandHandler() commands.CompleteStuckDeliveriesCommandHandler {
	return commands.NewCompleteStuckDeliveriesCommandHandler(c.orderUoWFactory(), c.publisher, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderDetailQueryHandler() queries.GetOrderDetailQueryHandler {
	return queries.NewGetOrderDetailQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatisticsQueryHandler() queries.GetOrderStatisticsQueryHandler {
	return queries.NewGetOrderStatisticsQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		Submit:           c.CreateSubmitOrderCommandHandler(),
		ConfirmPayment:   c.CreateConfirmPaymentCommandHandler(),
		Accept:           c.CreateAcceptOrderCommandHandler(),
		Reject:           c.CreateRejectOrderCommandHandler(),
		CancelByStaff:    c.CreateCancelOrderByStaffCommandHandler(),
		CancelByCustomer: c.CreateCancelOrderByCustomerCommandHandler(),
		Dispatch:         c.CreateDispatchOrderCommandHandler(),
		Complete:         c.CreateCompleteOrderCommandHandler(),
		Reorder:          c.CreateReorderCommandHandler(),
		Detail:           c.CreateGetOrderDetailQueryHandler(),
		Statistics:       c.CreateGetOrderStatisticsQueryHandler(),
	}, c.registry, httpin.RateLimit{
		PerSecond: c.config.RateLimitPerSecond,
		Burst:     c.config.RateLimitBurst,
		ExpiresIn: c.config.RateLimitExpiresIn,
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	return jobs.NewJobManager(
		c.CreateCancelTimedOutOrdersCommandHandler(),
		c.CreateCompleteStuckDeliveriesCommandHandler(),
		jobs.Config{
			UnpaidAfter: c.config.UnpaidAfter,
			UnpaidSpec:  c.config.UnpaidSpec,
			StuckAfter:  c.config.StuckAfter,
			StuckSpec:   c.config.StuckSpec,
			Location:    c.config.Location,
		},
		jobs.NewMetrics(c.registry),
		c.logger,
	)
}

// Close flushes the event publisher and closes the database pool.
func (c *CompositionRoot) Close() error {
	var errDB error
	if sqlDB, err := c.gormDB.DB(); err != nil {
		errDB = err
	} else {
		errDB = sqlDB.Close()
	}
	return errors.Join(c.publisher.Close(), errDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
