package cmd

import (
	"log/slog"
	"strings"
	"time"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/postgres/couponrepo"
	"fulfillment/internal/adapters/out/postgres/courierrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application's command and query
// handlers. Handlers are created per call; shared infrastructure (database
// connection, event publisher, logger) lives here.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.OrderEventPublisher
	logger     *slog.Logger
	config     Config
}

// NewCompositionRoot builds the shared infrastructure from the configuration.
// The event publisher stays nil when no Kafka host is configured; handlers
// treat publication as best-effort and skip it.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	var publisher ports.OrderEventPublisher
	if config.KafkaHost != "" {
		publisher = kafka.NewOrderEventPublisher(
			strings.Split(config.KafkaHost, ","),
			config.KafkaOrderChangedTopic,
		)
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		logger:     logger,
		config:     config,
	}
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(
		f,
		catalogrepo.NewGormMenuCatalog(c.gormDB),
		catalogrepo.NewGormRestaurantCatalog(c.gormDB),
		couponrepo.NewGormCouponEvaluator(c.gormDB),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateConfirmOrderCommandHandler() commands.ConfirmOrderCommandHandler {
	return commands.NewConfirmOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateRestaurantStatusCommandHandler() commands.RestaurantStatusCommandHandler {
	return commands.NewRestaurantStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(
		c.orderUoWFactory(),
		courierrepo.NewGormCourierRegistry(c.gormDB),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCourierStatusCommandHandler() commands.CourierStatusCommandHandler {
	return commands.NewCourierStatusCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateRateOrderCommandHandler() commands.RateOrderCommandHandler {
	return commands.NewRateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateProcessRefundCommandHandler() commands.ProcessRefundCommandHandler {
	return commands.NewProcessRefundCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateCancelStaleOrdersCommandHandler() commands.CancelStaleOrdersCommandHandler {
	return commands.NewCancelStaleOrdersCommandHandler(c.orderUoWFactory(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateProcessPendingRefundsCommandHandler() commands.ProcessPendingRefundsCommandHandler {
	return commands.NewProcessPendingRefundsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateGetMyOrdersQueryHandler() queries.GetMyOrdersQueryHandler {
	return queries.NewGetMyOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRevenueQueryHandler() queries.GetRevenueQueryHandler {
	return queries.NewGetRevenueQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server from all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateConfirmOrderCommandHandler(),
		c.CreateRestaurantStatusCommandHandler(),
		c.CreateAcceptOrderCommandHandler(),
		c.CreateCourierStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateUpdateLocationCommandHandler(),
		c.CreateRateOrderCommandHandler(),
		c.CreateProcessRefundCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetMyOrdersQueryHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetTrackingQueryHandler(),
		c.CreateGetRevenueQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateCancelStaleOrdersCommandHandler(),
		c.CreateProcessPendingRefundsCommandHandler(),
		time.Duration(c.config.StalePendingMinutes)*time.Minute,
		c.logger,
	)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
