package order

import (
	"time"

	"github.com/google/uuid"
)

// StatusChanged is recorded by the aggregate on every transition and
// published once the transition is committed.
type StatusChanged struct {
	EventID     uuid.UUID
	OrderID     int64
	OrderNumber string
	CustomerID  int64
	Previous    Status
	Current     Status
	PayStatus   PayStatus
	Reason      string
	OccurredAt  time.Time
}
