package payment

import (
	"context"
	"sync"

	"takeout/internal/core/ports"

	"github.com/google/uuid"
)

// SimulatedGateway accepts every payment and refund in memory. It remembers
// which order numbers were charged so a second charge is rejected the way a
// real provider would. Entries are never evicted, so memory grows with every
// charged order; it is meant for local runs and tests only.
type SimulatedGateway struct {
	mu   sync.Mutex
	paid map[string]string
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{paid: make(map[string]string)}
}

func (g *SimulatedGateway) Pay(_ context.Context, req ports.PaymentRequest) (ports.PaymentReceipt, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	number := req.OrderNumber.String()
	if _, ok := g.paid[number]; ok {
		return ports.PaymentReceipt{}, ports.ErrPaymentAlreadyCompleted
	}

	token := "sim_pi_" + uuid.NewString()
	g.paid[number] = token
	return ports.PaymentReceipt{Token: token}, nil
}

func (g *SimulatedGateway) Refund(_ context.Context, _ ports.RefundRequest) (ports.RefundReceipt, error) {
	return ports.RefundReceipt{RefundID: "sim_re_" + uuid.NewString()}, nil
}
