package notify

import (
	"context"

	"twinpersona/internal/domain/ports/adapter"
)

var _ adapter.Notifier = (*NoopNotifier)(nil)

// NoopNotifier is used when no operator chat is configured.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (NoopNotifier) CampaignExhausted(ctx context.Context)                       {}
func (NoopNotifier) RefundIssued(ctx context.Context, pid string, amount int64)  {}
func (NoopNotifier) WebhookRejected(ctx context.Context, reason string)          {}
