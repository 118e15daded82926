package payment

import (
	"context"
	"fmt"

	"twinpersona/internal/domain"
	"twinpersona/internal/domain/ports/adapter"
)

var _ adapter.PaymentGateway = (*NoopGateway)(nil)

var errPaymentsDisabled = fmt.Errorf("%w: payment provider secret key", domain.ErrConfigMissing)

// NoopGateway lets the service boot in developer mode without provider
// credentials. Every payment operation fails.
type NoopGateway struct{}

func (NoopGateway) Name() string { return "noop" }

func (NoopGateway) CreateIntent(ctx context.Context, amount int64, currency, email string, meta map[string]string) (adapter.PaymentIntent, error) {
	return adapter.PaymentIntent{}, errPaymentsDisabled
}

func (NoopGateway) ParseWebhook(payload []byte, sig string) (adapter.WebhookEvent, error) {
	return adapter.WebhookEvent{}, errPaymentsDisabled
}

func (NoopGateway) Refund(ctx context.Context, intentID string, expected int64, meta map[string]string) (adapter.RefundResult, error) {
	return adapter.RefundResult{}, errPaymentsDisabled
}
