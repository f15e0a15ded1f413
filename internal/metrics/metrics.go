// Package metrics exposes Prometheus collectors for DeBank API usage.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes recorded by the client
const (
	OutcomeSuccess     = "success"
	OutcomeTransport   = "transport_error"
	OutcomeAPI         = "api_error"
	OutcomeInvalidData = "invalid_data"
)

// Collector groups the client's collectors. A nil *Collector is a no-op.
type Collector struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	pollAttempts  *prometheus.CounterVec
	omittedChains *prometheus.CounterVec
}

// NewCollector creates the collectors and registers them with reg
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debank",
			Name:      "requests_total",
			Help:      "DeBank API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "debank",
			Name:      "request_duration_seconds",
			Help:      "DeBank API request latency by endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		pollAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debank",
			Name:      "job_poll_attempts_total",
			Help:      "Polls issued against asynchronous NFT endpoints.",
		}, []string{"endpoint"}),
		omittedChains: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "debank",
			Name:      "job_poll_omitted_chains_total",
			Help:      "Chains dropped from results because their job never became ready.",
		}, []string{"endpoint", "chain"}),
	}

	for _, collector := range []prometheus.Collector{c.requests, c.duration, c.pollAttempts, c.omittedChains} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRequest records one finished request
func (c *Collector) ObserveRequest(endpoint, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(endpoint, outcome).Inc()
	c.duration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ObservePoll records one poll of an asynchronous endpoint
func (c *Collector) ObservePoll(endpoint string) {
	if c == nil {
		return
	}
	c.pollAttempts.WithLabelValues(endpoint).Inc()
}

// ObserveOmittedChain records a chain left out after polling gave up
func (c *Collector) ObserveOmittedChain(endpoint, chain string) {
	if c == nil {
		return
	}
	c.omittedChains.WithLabelValues(endpoint, chain).Inc()
}
