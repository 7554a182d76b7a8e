package payments

import "github.com/prometheus/client_golang/prometheus"

var (
	paymentsRecorded = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_payments_recorded_total",
		Help: "Payments written, by type and method",
	}, []string{"type", "method"})

	referralBonusPoints = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wellness_referral_bonus_points_total",
		Help: "Points credited to referrers",
	})
)

func init() {
	prometheus.MustRegister(paymentsRecorded, referralBonusPoints)
}
