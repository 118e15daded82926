package model

import "time"

// CouponTTL is how long an issued coupon stays redeemable. The store evicts
// the key after this duration; the validator also checks the clock as
// defense-in-depth.
const CouponTTL = 24 * time.Hour

// Coupon is a single-use premium-unlock code minted on campaign redemption.
type Coupon struct {
	Code        string     `json:"code"`
	Fingerprint string     `json:"fingerprint"`
	CreatedAt   time.Time  `json:"created_at"`
	Used        bool       `json:"used"`
	UsedAt      *time.Time `json:"used_at,omitempty"`
}

// Expired reports whether the coupon is past its 24-hour window at `now`.
func (c *Coupon) Expired(now time.Time) bool {
	return now.After(c.CreatedAt.Add(CouponTTL))
}
