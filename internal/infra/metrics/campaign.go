package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	redemptionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campaign_redemptions_total",
			Help: "Campaign redemption attempts by namespace and outcome.",
		},
		[]string{"namespace", "outcome"},
	)

	campaignRemaining = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "campaign_slots_remaining",
			Help: "Remaining campaign slots as of the last status read.",
		},
	)

	couponsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "coupons_issued_total",
			Help: "Coupons minted on successful redemptions.",
		},
	)

	couponsValidatedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coupons_validated_total",
			Help: "Coupon validations by outcome (ok/not_found/used/expired).",
		},
		[]string{"outcome"},
	)
)

func init() {
	register(redemptionsTotal, campaignRemaining, couponsIssuedTotal, couponsValidatedTotal)
}

func IncRedemption(namespace, outcome string) {
	redemptionsTotal.WithLabelValues(norm(namespace), norm(outcome)).Inc()
}

func SetCampaignRemaining(n int) {
	campaignRemaining.Set(float64(n))
}

func IncCouponIssued() {
	couponsIssuedTotal.Inc()
}

func IncCouponValidated(outcome string) {
	couponsValidatedTotal.WithLabelValues(norm(outcome)).Inc()
}
