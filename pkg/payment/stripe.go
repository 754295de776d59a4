// Package payment wraps the payment processor behind a small interface so
// services and tests do not depend on the Stripe SDK directly.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"

	"github.com/hometech/server/config"
)

// Gateway creates payment intents with the external processor.
type Gateway interface {
	// CreateIntent registers an intent for the given amount in minor units
	// (cents) and returns the client secret the frontend confirms with.
	CreateIntent(ctx context.Context, amountMinorUnits int64) (clientSecret string, err error)
}

// StripeGateway is the production Gateway backed by Stripe PaymentIntents.
type StripeGateway struct {
	currency string
}

// NewStripeGateway configures the Stripe client from config.
func NewStripeGateway() *StripeGateway {
	stripe.Key = config.StripeSecretKey()
	return &StripeGateway{currency: config.PaymentCurrency()}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, amountMinorUnits int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amountMinorUnits),
		Currency: stripe.String(g.currency),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create intent: %w", err)
	}
	return intent.ClientSecret, nil
}
