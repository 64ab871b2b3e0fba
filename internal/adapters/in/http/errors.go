package http

import (
	"errors"
	"log/slog"
	"net/http"

	"takeout/internal/core/application/usecases/commands"
	"takeout/internal/core/domain/model/order"
	"takeout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error codes returned in errorResponse.Code.
const (
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeContactMerchant = "CONTACT_MERCHANT"
	CodeAlreadyPaid     = "ALREADY_PAID"
	CodeCartIsEmpty     = "CART_IS_EMPTY"
	CodeInvalidStatus   = "INVALID_STATUS"
	CodeConflict        = "CONFLICT"
	CodeRefundPending   = "REFUND_PENDING"
	CodeUpstreamFailure = "UPSTREAM_FAILURE"
	CodeInternal        = "INTERNAL"
	CodeTooManyRequests = "TOO_MANY_REQUESTS"
	CodePrecondition    = "PRECONDITION_FAILED"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classify maps an application error to a status and code. The order of
// the cases matters: ErrRefundPending also matches ErrUpstreamFailure and
// every domain precondition also matches ErrPreconditionFailed.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, commands.ErrRefundPending):
		return http.StatusAccepted, CodeRefundPending
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, order.ErrContactMerchant):
		return http.StatusConflict, CodeContactMerchant
	case errors.Is(err, order.ErrAlreadyPaid):
		return http.StatusUnprocessableEntity, CodeAlreadyPaid
	case errors.Is(err, commands.ErrCartIsEmpty):
		return http.StatusUnprocessableEntity, CodeCartIsEmpty
	case errors.Is(err, order.ErrInvalidStatus):
		return http.StatusUnprocessableEntity, CodeInvalidStatus
	case errors.Is(err, errs.ErrPreconditionFailed):
		return http.StatusUnprocessableEntity, CodePrecondition
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, errs.ErrUpstreamFailure):
		return http.StatusBadGateway, CodeUpstreamFailure
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func (s *Server) writeError(c echo.Context, err error) error {
	status, code := classify(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		message = http.StatusText(status)
	}

	return c.JSON(status, errorResponse{Code: code, Message: message})
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Code: CodeBadRequest, Message: message})
}

// logLevel picks the slog level for a finished request.
func logLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
