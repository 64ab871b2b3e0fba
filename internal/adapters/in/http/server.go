// Package http exposes the order lifecycle over a JSON API. Customer routes
// live under /user and require the X-Customer-ID header; merchant routes live
// under /admin.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/application/usecases/queries"
	"takeout/internal/core/domain/model/kernel"
	"takeout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type commandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

type resultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers groups the use cases served by Server.
type Handlers struct {
	Submit           resultHandler[commands.SubmitOrderCommand, commands.SubmitOrderResult]
	ConfirmPayment   resultHandler[commands.ConfirmPaymentCommand, commands.ConfirmPaymentResult]
	Accept           commandHandler[commands.AcceptOrderCommand]
	Reject           commandHandler[commands.RejectOrderCommand]
	CancelByStaff    commandHandler[commands.CancelOrderByStaffCommand]
	CancelByCustomer commandHandler[commands.CancelOrderByCustomerCommand]
	Dispatch         commandHandler[commands.DispatchOrderCommand]
	Complete         commandHandler[commands.CompleteOrderCommand]
	Reorder          resultHandler[commands.ReorderCommand, int]
	Detail           resultHandler[queries.GetOrderDetailQuery, queries.OrderDetailResponse]
	Statistics       resultHandler[queries.GetOrderStatisticsQuery, queries.OrderStatisticsResponse]
}

// Server maps HTTP requests onto command and query handlers.
type Server struct {
	handlers  Handlers
	gatherer  prometheus.Gatherer
	rateLimit RateLimit
	logger    *slog.Logger
}

func NewServer(handlers Handlers, gatherer prometheus.Gatherer, rateLimit RateLimit, logger *slog.Logger) *Server {
	return &Server{
		handlers:  handlers,
		gatherer:  gatherer,
		rateLimit: rateLimit,
		logger:    logger.With("component", "HTTPServer"),
	}
}

// Register installs middleware and routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(middleware.Recover())
	e.Use(requestLogger(s.logger))
	if s.rateLimit.PerSecond > 0 {
		e.Use(rateLimiter(s.rateLimit))
	}

	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))

	user := e.Group("/user/order", requireCustomer)
	user.POST("/submit", s.SubmitOrder)
	user.PUT("/payment", s.ConfirmPayment)
	user.GET("/orderDetail/:id", s.GetCustomerOrderDetail)
	user.PUT("/cancel/:id", s.CancelOrderByCustomer)
	user.POST("/repetition/:id", s.Reorder)

	admin := e.Group("/admin/order")
	admin.PUT("/confirm", s.AcceptOrder)
	admin.PUT("/rejection", s.RejectOrder)
	admin.PUT("/cancel", s.CancelOrderByStaff)
	admin.PUT("/delivery/:id", s.DispatchOrder)
	admin.PUT("/complete/:id", s.CompleteOrder)
	admin.GET("/statistics", s.GetStatistics)
	admin.GET("/details/:id", s.GetOrderDetail)
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// SubmitOrder handles POST /user/order/submit.
func (s *Server) SubmitOrder(c echo.Context) error {
	var req submitOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	amount, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewSubmitOrderCommand(customerID(c), req.AddressBookID, amount, req.Remark)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.Submit.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, newSubmitOrderResponse(result))
}

// ConfirmPayment handles PUT /user/order/payment.
func (s *Server) ConfirmPayment(c echo.Context) error {
	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	number, err := kernel.OrderNumberFromString(req.OrderNumber)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(customerID(c), number)
	if err != nil {
		return s.writeError(c, err)
	}

	result, err := s.handlers.ConfirmPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, paymentResponse{
		OrderID:      result.OrderID,
		PaymentToken: result.PaymentToken,
		CheckoutTime: result.CheckoutTime,
	})
}

// GetCustomerOrderDetail handles GET /user/order/orderDetail/:id.
func (s *Server) GetCustomerOrderDetail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetCustomerOrderDetailQuery(customerID(c), id)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.respondDetail(c, query)
}

// GetOrderDetail handles GET /admin/order/details/:id.
func (s *Server) GetOrderDetail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	query, err := queries.NewGetOrderDetailQuery(id)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.respondDetail(c, query)
}

func (s *Server) respondDetail(c echo.Context, query queries.GetOrderDetailQuery) error {
	detail, err := s.handlers.Detail.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderDetailResponse(detail))
}

// CancelOrderByCustomer handles PUT /user/order/cancel/:id.
func (s *Server) CancelOrderByCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCancelOrderByCustomerCommand(customerID(c), id)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.noContent(c, s.handlers.CancelByCustomer.Handle(c.Request().Context(), cmd))
}

// Reorder handles POST /user/order/repetition/:id.
func (s *Server) Reorder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewReorderCommand(customerID(c), id)
	if err != nil {
		return s.writeError(c, err)
	}

	inserted, err := s.handlers.Reorder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, reorderResponse{Inserted: inserted})
}

// AcceptOrder handles PUT /admin/order/confirm.
func (s *Server) AcceptOrder(c echo.Context) error {
	var req confirmRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewAcceptOrderCommand(req.ID)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.noContent(c, s.handlers.Accept.Handle(c.Request().Context(), cmd))
}

// RejectOrder handles PUT /admin/order/rejection.
func (s *Server) RejectOrder(c echo.Context) error {
	var req rejectionRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewRejectOrderCommand(req.ID, req.RejectionReason)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.noContent(c, s.handlers.Reject.Handle(c.Request().Context(), cmd))
}

// CancelOrderByStaff handles PUT /admin/order/cancel.
func (s *Server) CancelOrderByStaff(c echo.Context) error {
	var req cancelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	cmd, err := commands.NewCancelOrderByStaffCommand(req.ID, req.CancelReason)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.noContent(c, s.handlers.CancelByStaff.Handle(c.Request().Context(), cmd))
}

// DispatchOrder handles PUT /admin/order/delivery/:id.
func (s *Server) DispatchOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewDispatchOrderCommand(id)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.noContent(c, s.handlers.Dispatch.Handle(c.Request().Context(), cmd))
}

// CompleteOrder handles PUT /admin/order/complete/:id.
func (s *Server) CompleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCompleteOrderCommand(id)
	if err != nil {
		return s.writeError(c, err)
	}

	return s.noContent(c, s.handlers.Complete.Handle(c.Request().Context(), cmd))
}

// GetStatistics handles GET /admin/order/statistics.
func (s *Server) GetStatistics(c echo.Context) error {
	stats, err := s.handlers.Statistics.Handle(c.Request().Context(), queries.NewGetOrderStatisticsQuery())
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, statisticsResponse{
		ToBeConfirmed:      stats.ToBeConfirmed,
		Confirmed:          stats.Confirmed,
		DeliveryInProgress: stats.DeliveryInProgress,
	})
}

func (s *Server) noContent(c echo.Context, err error) error {
	if err != nil {
		return s.writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}
