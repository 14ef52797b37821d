package paymentsvc

import (
	"context"

	"github.com/pkg/errors"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/skillspring/server/core"
	"github.com/skillspring/server/core/payment"
)

var paymentMethodTypes = []string{"card"}

type stripeGateway struct {
	sc *client.API
}

var _ payment.Gateway = (*stripeGateway)(nil)

// NewStripeGateway returns a payment.Gateway creating Stripe payment intents. Requests are not retried.
func NewStripeGateway(conf *core.Config, logger stripe.LeveledLoggerInterface) payment.Gateway {
	return newStripeGateway(conf.Stripe.SecretKey, &stripe.BackendConfig{
		LeveledLogger:     logger,
		MaxNetworkRetries: stripe.Int64(0),
	})
}

func newStripeGateway(key string, cfg *stripe.BackendConfig) *stripeGateway {
	backends := &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, cfg),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, cfg),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, cfg),
	}
	return &stripeGateway{sc: client.New(key, backends)}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, p payment.IntentParams) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(p.Amount),
		Currency:           stripe.String(p.Currency),
		PaymentMethodTypes: stripe.StringSlice(paymentMethodTypes),
	}
	params.Context = ctx
	if p.IdempotencyKey != "" {
		params.SetIdempotencyKey(p.IdempotencyKey)
	}

	pi, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return "", errors.Wrapf(core.ErrPaymentGateway, "stripe: %v", err)
	}
	return pi.ClientSecret, nil
}
