package model

import "time"

// PremiumPriceJPY is the fixed charge for the premium tier.
const PremiumPriceJPY int64 = 500

// AccessTokenTTL bounds how long a premium unlock stays valid.
const AccessTokenTTL = 24 * time.Hour

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"   // intent created, awaiting confirmation
	PaymentStatusSucceeded PaymentStatus = "succeeded" // provider confirmed the charge
	PaymentStatusFailed    PaymentStatus = "failed"    // provider reported failure
	PaymentStatusRefunded  PaymentStatus = "refunded"  // refunded via the campaign path
)

// Payment records an external payment intent and its lifecycle. Persisted to
// the archive store when one is configured.
type Payment struct {
	IntentID  string        `json:"intent_id"`
	Email     string        `json:"email,omitempty"`
	Amount    int64         `json:"amount"`
	Currency  string        `json:"currency"`
	Status    PaymentStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// AccessToken authorizes premium-feature calls after a confirmed payment.
// Stored in the shared store keyed by JTI so any instance can verify it;
// the token itself travels as a signed JWT.
type AccessToken struct {
	JTI             string     `json:"jti"`
	PaymentIntentID string     `json:"payment_intent_id"`
	Email           string     `json:"email,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at"`
	Used            bool       `json:"used"`
	UsedAt          *time.Time `json:"used_at,omitempty"`
}
