package adapter

import (
	"context"
	"time"
)

// EventType is the subset of provider webhook events this service acts on.
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_intent.succeeded"
	EventPaymentFailed    EventType = "payment_intent.payment_failed"
)

// WebhookEvent is the provider-agnostic view of a webhook delivery.
// Unrecognized provider events map to an empty Type and are ignored upstream.
type WebhookEvent struct {
	Type            EventType
	PaymentIntentID string
	Email           string
	Amount          int64
	Raw             []byte
}

// PaymentIntent is the client-facing result of creating a charge.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	Amount       int64
	Currency     string
}

// RefundResult captures a minimal, provider-agnostic result of a refund.
type RefundResult struct {
	ID         string
	Amount     int64
	RefundedAt time.Time
}

// PaymentGateway is the hex port for the payment provider.
type PaymentGateway interface {
	Name() string

	// CreateIntent requests a fixed-amount charge intent. The email, when
	// present, is attached both as the receipt address and as metadata for
	// later correlation.
	CreateIntent(ctx context.Context, amount int64, currency, email string, meta map[string]string) (PaymentIntent, error)

	// ParseWebhook verifies the payload signature (when a signing secret is
	// configured) and maps the event to a WebhookEvent.
	ParseWebhook(payload []byte, signatureHeader string) (WebhookEvent, error)

	// Refund issues a full refund for a succeeded charge of exactly
	// expectedAmount. Returns domain.ErrPaymentNotCompleted or
	// domain.ErrInvalidAmount when the original charge does not qualify.
	Refund(ctx context.Context, paymentIntentID string, expectedAmount int64, meta map[string]string) (RefundResult, error)
}

// TokenSigner mints and verifies the signed premium access tokens.
type TokenSigner interface {
	Sign(jti, paymentIntentID, email string, expiresAt time.Time) (string, error)
	// Verify checks the signature and expiry and returns the embedded JTI.
	Verify(token string) (jti string, err error)
}
