package api

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts conversions served by the API.
type Metrics struct {
	conversions *prometheus.CounterVec
	records     *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics registers the conversion collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rekening",
			Name:      "conversions_total",
			Help:      "Statement conversions by bank and outcome.",
		}, []string{"bank", "outcome"}),
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rekening",
			Name:      "records_total",
			Help:      "Transaction records extracted by bank.",
		}, []string{"bank"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rekening",
			Name:      "conversion_seconds",
			Help:      "Time spent reading and parsing one statement.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.conversions, m.records, m.duration)
	return m
}

func (m *Metrics) observe(bank, outcome string, records int, seconds float64) {
	if m == nil {
		return
	}
	if bank == "" {
		bank = "unknown"
	}
	m.conversions.WithLabelValues(bank, outcome).Inc()
	if records > 0 {
		m.records.WithLabelValues(bank).Add(float64(records))
	}
	m.duration.Observe(seconds)
}
