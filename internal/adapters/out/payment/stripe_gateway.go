// Package payment implements ports.PaymentGateway on top of Stripe, plus an
// in-process simulated gateway for local runs and tests.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"takeout/internal/core/ports"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

type paymentIntentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type refundAPI interface {
	New(params *stripe.RefundParams) (*stripe.Refund, error)
}

// StripeConfig configures StripeGateway.
type StripeConfig struct {
	APIKey   string
	Currency string
	// PaymentMethod is charged on behalf of the customer. In test mode
	// "pm_card_visa" always succeeds.
	PaymentMethod string
	Backends      *stripe.Backends
}

// StripeGateway charges orders with confirmed PaymentIntents and refunds
// them with Refunds. Both calls carry an idempotency key derived from the
// order number, so a retried call never charges or refunds twice.
type StripeGateway struct {
	intents       paymentIntentAPI
	refunds       refundAPI
	currency      string
	paymentMethod string
	logger        *slog.Logger
}

func NewStripeGateway(cfg StripeConfig, logger *slog.Logger) (*StripeGateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("stripe: api key is required")
	}

	sc := client.New(apiKey, cfg.Backends)
	return newStripeGateway(sc.PaymentIntents, sc.Refunds, cfg, logger), nil
}

func newStripeGateway(intents paymentIntentAPI, refunds refundAPI, cfg StripeConfig, logger *slog.Logger) *StripeGateway {
	currency := strings.ToLower(strings.TrimSpace(cfg.Currency))
	if currency == "" {
		currency = string(stripe.CurrencyCNY)
	}
	paymentMethod := cfg.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "pm_card_visa"
	}

	return &StripeGateway{
		intents:       intents,
		refunds:       refunds,
		currency:      currency,
		paymentMethod: paymentMethod,
		logger:        logger.With("component", "StripeGateway"),
	}
}

func (g *StripeGateway) Pay(ctx context.Context, req ports.PaymentRequest) (ports.PaymentReceipt, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.Amount.MinorUnits()),
		Currency:      stripe.String(g.currency),
		PaymentMethod: stripe.String(g.paymentMethod),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String(string(stripe.PaymentIntentAutomaticPaymentMethodsAllowRedirectsNever)),
		},
	}
	params.Context = ctx
	params.SetIdempotencyKey("pay-" + req.OrderNumber.String())
	params.AddMetadata("order_number", req.OrderNumber.String())
	params.AddMetadata("customer_id", strconv.FormatInt(req.CustomerID, 10))

	intent, err := g.intents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodePaymentIntentUnexpectedState {
			return ports.PaymentReceipt{}, errors.Join(ports.ErrPaymentAlreadyCompleted, err)
		}
		return ports.PaymentReceipt{}, fmt.Errorf("stripe: create payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return ports.PaymentReceipt{}, fmt.Errorf("stripe: payment intent %s is %s", intent.ID, intent.Status)
	}

	g.logger.InfoContext(ctx, "payment captured",
		"order_number", req.OrderNumber.String(),
		"payment_intent", intent.ID,
	)
	return ports.PaymentReceipt{Token: intent.ID}, nil
}

func (g *StripeGateway) Refund(ctx context.Context, req ports.RefundRequest) (ports.RefundReceipt, error) {
	if req.PaymentToken == "" {
		return ports.RefundReceipt{}, errors.New("stripe: refund needs the payment intent id")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(req.PaymentToken),
		Amount:        stripe.Int64(req.Amount.MinorUnits()),
		Reason:        stripe.String(string(stripe.RefundReasonRequestedByCustomer)),
	}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + req.OrderNumber.String())
	params.AddMetadata("order_number", req.OrderNumber.String())
	if req.Reason != "" {
		params.AddMetadata("cancel_reason", req.Reason)
	}

	refund, err := g.refunds.New(params)
	if err != nil {
		return ports.RefundReceipt{}, fmt.Errorf("stripe: refund payment intent: %w", err)
	}
	if refund.Status == stripe.RefundStatusFailed || refund.Status == stripe.RefundStatusCanceled {
		return ports.RefundReceipt{}, fmt.Errorf("stripe: refund %s is %s", refund.ID, refund.Status)
	}

	g.logger.InfoContext(ctx, "refund issued",
		"order_number", req.OrderNumber.String(),
		"refund", refund.ID,
	)
	return ports.RefundReceipt{RefundID: refund.ID}, nil
}
