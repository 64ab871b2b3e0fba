package queries

import (
	"errors"

	"takeout/internal/pkg/guard"
)

var (
	ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
		"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
	)
)

// GetOrderStatisticsQuery counts the orders staff still have to act on.
type GetOrderStatisticsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatisticsQuery() GetOrderStatisticsQuery {
	return GetOrderStatisticsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

// OrderStatisticsResponse holds the per-status counts.
type OrderStatisticsResponse struct {
	ToBeConfirmed      int64
	Confirmed          int64
	DeliveryInProgress int64
}
