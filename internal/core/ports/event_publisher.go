package ports

import (
	"context"

	"takeout/internal/core/domain/model/order"
)

// OrderEventPublisher announces committed order transitions.
// Delivery is best-effort; a publish failure never undoes a transition.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event order.StatusChanged) error
}
