package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// CustomerHeader carries the id of the customer a /user request acts for.
// Authenticating it is the job of the gateway in front of this service.
const CustomerHeader = "X-Customer-ID"

const customerKey = "customerID"

// requireCustomer rejects /user requests without a positive customer id.
func requireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := c.Request().Header.Get(CustomerHeader)
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusUnauthorized, errorResponse{
				Code:    CodeUnauthorized,
				Message: CustomerHeader + " header must carry a positive customer id",
			})
		}

		c.Set(customerKey, id)
		return next(c)
	}
}

func customerID(c echo.Context) int64 {
	id, _ := c.Get(customerKey).(int64)
	return id
}

// RateLimit configures the per-client token bucket. A zero PerSecond
// disables limiting.
type RateLimit struct {
	PerSecond float64
	Burst     int
	ExpiresIn time.Duration
}

func rateLimiter(cfg RateLimit) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.PerSecond),
		Burst:     cfg.Burst,
		ExpiresIn: cfg.ExpiresIn,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			if id := c.Request().Header.Get(CustomerHeader); id != "" {
				return "customer:" + id, nil
			}
			return "ip:" + c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return c.JSON(http.StatusTooManyRequests, errorResponse{
				Code:    CodeTooManyRequests,
				Message: http.StatusText(http.StatusTooManyRequests),
			})
		},
	})
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), logLevel(v.Status), "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
