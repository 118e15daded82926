package repository

import (
	"context"
	"time"

	"twinpersona/internal/domain/model"
)

// CampaignLedger gates access to the capacity-limited promotion.
//
// Reserve must be atomic: the per-fingerprint gate and the bounded counter
// increment happen as one store-side operation, so concurrent requests near
// the capacity boundary can never push the counter past capacity and the
// same fingerprint can never claim two slots in a race.
type CampaignLedger interface {
	// Remaining returns max(capacity-count, 0).
	Remaining(ctx context.Context) (int, error)
	// Used reports whether the fingerprint already redeemed in the namespace.
	Used(ctx context.Context, ns model.Namespace, fingerprint string) (bool, error)
	// Reserve claims a slot for the fingerprint. Returns
	// domain.ErrAlreadyUsed or domain.ErrCampaignEnded on rejection.
	Reserve(ctx context.Context, ns model.Namespace, fingerprint string, now time.Time) error
	// Release undoes a Reserve when a later step of the redemption fails.
	Release(ctx context.Context, ns model.Namespace, fingerprint string) error
	// AppendRecord writes the append-only feedback/share record.
	AppendRecord(ctx context.Context, rec *model.ActionRecord) error
}

// CouponRepository stores single-use coupons with a store-enforced TTL.
type CouponRepository interface {
	Save(ctx context.Context, c *model.Coupon) error
	Find(ctx context.Context, code string) (*model.Coupon, error)
	// MarkUsed flips used=false -> true atomically. Returns
	// domain.ErrCouponNotFound or domain.ErrCouponUsed on rejection.
	MarkUsed(ctx context.Context, code string, now time.Time) error
}

// AccessTokenRepository stores premium access tokens in the shared store so
// a token minted on one instance is visible to every other instance.
type AccessTokenRepository interface {
	Save(ctx context.Context, t *model.AccessToken) error
	Find(ctx context.Context, jti string) (*model.AccessToken, error)
	// FindByIntent resolves the token minted for a payment intent, letting
	// the payer claim their token after the webhook fires.
	FindByIntent(ctx context.Context, paymentIntentID string) (*model.AccessToken, error)
	// Touch records first use. Verification does not consume the token;
	// premium access lasts until the store TTL evicts it.
	Touch(ctx context.Context, jti string, now time.Time) error
}
