package pagination

import "github.com/prometheus/client_golang/prometheus"

var pageFetchDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "wellness_page_fetch_duration_seconds",
		Help:    "Latency of paginated collection queries by collection.",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"collection"},
)

func init() {
	prometheus.MustRegister(pageFetchDuration)
}
