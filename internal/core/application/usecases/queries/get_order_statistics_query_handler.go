package queries

import (
	"context"

	"takeout/internal/core/domain/model/order"
)

// OrderCounter counts orders by status. ports.OrderRepository satisfies it.
type OrderCounter interface {
	CountByStatus(ctx context.Context, status order.Status) (int64, error)
}

// GetOrderStatisticsQueryHandler reports how many orders wait in each
// staff-facing status.
type GetOrderStatisticsQueryHandler struct {
	counter OrderCounter
}

func NewGetOrderStatisticsQueryHandler(counter OrderCounter) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{counter: counter}
}

func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (OrderStatisticsResponse, error) {
	if err := query.Validate(); err != nil {
		return OrderStatisticsResponse{}, err
	}

	var resp OrderStatisticsResponse
	for _, target := range []struct {
		status order.Status
		count  *int64
	}{
		{order.ToBeConfirmed, &resp.ToBeConfirmed},
		{order.Confirmed, &resp.Confirmed},
		{order.DeliveryInProgress, &resp.DeliveryInProgress},
	} {
		n, err := h.counter.CountByStatus(ctx, target.status)
		if err != nil {
			return OrderStatisticsResponse{}, err
		}
		*target.count = n
	}

	return resp, nil
}
