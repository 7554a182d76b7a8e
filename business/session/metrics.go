package session

import "github.com/prometheus/client_golang/prometheus"

var (
	// Tokens also end by expiring in Redis, so sign-outs never balance sign-ins.
	signIns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wellness_sign_ins_total",
		Help: "Sessions opened through this instance",
	})

	signOuts = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wellness_sign_outs_total",
		Help: "Sessions closed by an explicit sign-out",
	})

	signUps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_signups_total",
		Help: "Profile creations by origin and outcome",
	}, []string{"origin", "outcome"})

	logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wellness_logins_total",
		Help: "Login attempts by outcome",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(signIns, signOuts, signUps, logins)
}
