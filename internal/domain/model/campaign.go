package model

import "time"

// Namespace separates the two promotion paths that share the global counter.
// The free-claim path and the paid-refund path keep independent per-fingerprint
// usage records (see the key layout: campaign:used:* vs refund:used:*).
type Namespace string

const (
	NamespaceCampaign Namespace = "campaign"
	NamespaceRefund   Namespace = "refund"
)

// Action is the qualifying action a user performs to redeem a campaign slot.
type Action string

const (
	ActionShare    Action = "share"
	ActionFeedback Action = "feedback"
	// ActionRefund tags ledger records written by the paid-refund path.
	// It is not a user-selectable redemption action.
	ActionRefund Action = "refund"
)

// Valid reports whether the action is one of the accepted redemption actions.
func (a Action) Valid() bool {
	return a == ActionShare || a == ActionFeedback
}

// CampaignStatus is the read-only snapshot returned to the quiz client.
type CampaignStatus struct {
	Active       bool `json:"active"`
	Remaining    int  `json:"remaining"`
	UserEligible bool `json:"user_eligible"`
}

// FeedbackPayload is the payload stored for a feedback redemption.
type FeedbackPayload struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

// SharePayload is the payload stored for a share redemption.
type SharePayload struct {
	Platform string `json:"platform"`
}

// ActionRecord is the append-only record written alongside a redemption.
// Keyed by <action>:<timestamp>:<fingerprint> in the store; never updated.
type ActionRecord struct {
	ID              string    `json:"id"` // ULID, time-ordered
	Action          Action    `json:"action"`
	Fingerprint     string    `json:"fingerprint"`
	PaymentIntentID string    `json:"payment_intent_id,omitempty"` // refund path only
	Payload         any       `json:"payload"`
	CreatedAt       time.Time `json:"created_at"`
}
