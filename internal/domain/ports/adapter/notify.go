package adapter

import "context"

// Notifier pushes operational events to whoever runs the campaign.
// Implementations must be best-effort: a notification failure never fails
// the user-facing request.
type Notifier interface {
	CampaignExhausted(ctx context.Context)
	RefundIssued(ctx context.Context, paymentIntentID string, amount int64)
	WebhookRejected(ctx context.Context, reason string)
}
