package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/ports/adapter"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"
	"github.com/stripe/stripe-go/v79/webhook"
)

var _ adapter.PaymentGateway = (*StripeGateway)(nil)

// StripeGateway implements the payment port with the official SDK.
// When webhookSecret is empty, signature verification is skipped.
// That relaxation is for local development only.
type StripeGateway struct {
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string) (*StripeGateway, error) {
	if secretKey == "" {
		return nil, errors.New("stripe secret key empty")
	}
	stripe.Key = secretKey
	return &StripeGateway{webhookSecret: webhookSecret}, nil
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency, email string, meta map[string]string) (adapter.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	applyEmailAndMeta(params, email, meta)

	pi, err := paymentintent.New(params)
	if err != nil {
		// Some account configurations reject automatic payment-method
		// negotiation; retry as a plain card charge.
		var stripeErr *stripe.Error
		if !errors.As(err, &stripeErr) {
			return adapter.PaymentIntent{}, err
		}
		cardParams := &stripe.PaymentIntentParams{
			Params:             stripe.Params{Context: ctx},
			Amount:             stripe.Int64(amount),
			Currency:           stripe.String(currency),
			PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		}
		applyEmailAndMeta(cardParams, email, meta)
		pi, err = paymentintent.New(cardParams)
		if err != nil {
			return adapter.PaymentIntent{}, err
		}
	}

	return adapter.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
	}, nil
}

func applyEmailAndMeta(params *stripe.PaymentIntentParams, email string, meta map[string]string) {
	if email != "" {
		params.ReceiptEmail = stripe.String(email)
		params.AddMetadata("email", email)
	}
	for k, v := range meta {
		params.AddMetadata(k, v)
	}
}

func (g *StripeGateway) ParseWebhook(payload []byte, signatureHeader string) (adapter.WebhookEvent, error) {
	var event stripe.Event
	if g.webhookSecret != "" {
		var err error
		event, err = webhook.ConstructEvent(payload, signatureHeader, g.webhookSecret)
		if err != nil {
			return adapter.WebhookEvent{}, fmt.Errorf("invalid webhook signature: %w", err)
		}
	} else if err := json.Unmarshal(payload, &event); err != nil {
		return adapter.WebhookEvent{}, fmt.Errorf("invalid webhook payload: %w", err)
	}

	switch event.Type {
	case "payment_intent.succeeded", "payment_intent.payment_failed":
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return adapter.WebhookEvent{}, fmt.Errorf("unmarshal payment intent: %w", err)
		}
		email := pi.ReceiptEmail
		if email == "" {
			email = pi.Metadata["email"]
		}
		evType := adapter.EventPaymentSucceeded
		if event.Type == "payment_intent.payment_failed" {
			evType = adapter.EventPaymentFailed
		}
		return adapter.WebhookEvent{
			Type:            evType,
			PaymentIntentID: pi.ID,
			Email:           email,
			Amount:          pi.Amount,
			Raw:             payload,
		}, nil
	default:
		// unrecognized events are ignored, not an error
		return adapter.WebhookEvent{Raw: payload}, nil
	}
}

func (g *StripeGateway) Refund(ctx context.Context, paymentIntentID string, expectedAmount int64, meta map[string]string) (adapter.RefundResult, error) {
	pi, err := paymentintent.Get(paymentIntentID, &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}})
	if err != nil {
		return adapter.RefundResult{}, err
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return adapter.RefundResult{}, domain.ErrPaymentNotCompleted
	}
	if pi.Amount != expectedAmount {
		return adapter.RefundResult{}, domain.ErrInvalidAmount
	}

	params := &stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	}
	for k, v := range meta {
		params.AddMetadata(k, v)
	}
	r, err := refund.New(params)
	if err != nil {
		return adapter.RefundResult{}, err
	}
	return adapter.RefundResult{
		ID:         r.ID,
		Amount:     r.Amount,
		RefundedAt: time.Unix(r.Created, 0),
	}, nil
}
