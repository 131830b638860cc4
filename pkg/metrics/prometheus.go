package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	quotesServed    *prometheus.CounterVec
	fallbacksTotal  *prometheus.CounterVec
	signalsTotal    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	lastMid         *prometheus.GaugeVec
	providerLatency *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		quotesServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_quotes_served_total",
				Help: "Quotes served, labelled by data provenance",
			},
			[]string{"source", "symbol"},
		),
		fallbacksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_quote_fallbacks_total",
				Help: "Synthetic fallbacks by reason",
			},
			[]string{"reason"},
		),
		signalsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_signals_generated_total",
				Help: "Trade signals generated by direction",
			},
			[]string{"direction"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxpulse_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastMid: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "fxpulse_last_mid_price",
				Help: "Last observed mid price for a symbol",
			},
			[]string{"symbol"},
		),
		providerLatency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxpulse_provider_request_seconds",
				Help:    "Upstream provider request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider"},
		),
	}
}

// RecordQuoteServed records a quote served to a caller.
func (r *Recorder) RecordQuoteServed(source, symbol string) {
	r.quotesServed.WithLabelValues(source, symbol).Inc()
}

// RecordFallback records a synthetic fallback with its trigger reason.
func (r *Recorder) RecordFallback(reason string) {
	r.fallbacksTotal.WithLabelValues(reason).Inc()
}

// RecordSignal records a generated signal.
func (r *Recorder) RecordSignal(direction string) {
	r.signalsTotal.WithLabelValues(direction).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastMid records the last mid price for a symbol.
func (r *Recorder) RecordLastMid(symbol string, price float64) {
	r.lastMid.WithLabelValues(symbol).Set(price)
}

// RecordProviderLatency records upstream request latency in seconds.
func (r *Recorder) RecordProviderLatency(provider string, seconds float64) {
	r.providerLatency.WithLabelValues(provider).Observe(seconds)
}
