package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the Prometheus counters for outbound requests. The CLI has no
// scrape surface; the counters are in-process and dumped at debug log level.
type metrics struct {
	RequestsTotal *prometheus.CounterVec
	ErrorsTotal   *prometheus.CounterVec
}

// newMetrics creates and registers the request counters with the given registry.
func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "briefly",
				Name:      "requests_total",
				Help:      "Total outbound API requests",
			},
			[]string{"endpoint", "status"}, // status=2xx/4xx/5xx
		),
		ErrorsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "briefly",
				Name:      "request_errors_total",
				Help:      "Total outbound API requests that failed before a response",
			},
			[]string{"endpoint"},
		),
	}
}
