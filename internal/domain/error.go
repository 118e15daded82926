package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// Campaign / coupon errors
	ErrAlreadyUsed      = errors.New("fingerprint already redeemed this campaign")
	ErrCampaignEnded    = errors.New("campaign capacity exhausted")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCouponUsed       = errors.New("coupon already used")
	ErrCouponExpired    = errors.New("coupon expired")
	ErrRateLimited      = errors.New("too many requests for this fingerprint")

	// Payment errors
	ErrPaymentNotCompleted = errors.New("payment is not in a completed state")
	ErrInvalidAmount       = errors.New("payment amount does not match the expected amount")
	ErrTokenInvalid        = errors.New("access token invalid or expired")

	// ErrConfigMissing marks an endpoint disabled by absent configuration
	// (API key, signing secret). Fatal for that endpoint, not the process.
	ErrConfigMissing = errors.New("required configuration missing")
)
