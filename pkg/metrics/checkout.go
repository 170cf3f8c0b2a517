package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records pricing-engine observability data.
type CheckoutMetrics struct {
	duration  *prometheus.HistogramVec
	applied   *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	anomalies prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_pricing_duration_seconds",
		Help:    "Duration of checkout pricing runs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_discounts_applied",
		Help: "Discounts applied to store order groups.",
	}, []string{"category"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_discounts_rejected",
		Help: "Discount codes considered but not applied.",
	}, []string{"reason"})
	anomalies := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_total_anomalies",
		Help: "Order group totals clamped to zero.",
	})
	reg.MustRegister(duration, applied, rejected, anomalies)
	return &CheckoutMetrics{
		duration:  duration,
		applied:   applied,
		rejected:  rejected,
		anomalies: anomalies,
	}
}

// ObserveDuration records the duration for the named pricing operation.
func (c *CheckoutMetrics) ObserveDuration(operation string, duration time.Duration) {
	if c == nil || c.duration == nil {
		return
	}
	c.duration.WithLabelValues(normalizeLabel(operation)).Observe(duration.Seconds())
}

// IncApplied increments the applied counter for a discount category.
func (c *CheckoutMetrics) IncApplied(category string) {
	if c == nil || c.applied == nil {
		return
	}
	c.applied.WithLabelValues(normalizeLabel(category)).Inc()
}

// IncRejected increments the rejected counter for an ineligibility reason.
func (c *CheckoutMetrics) IncRejected(reason string) {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncAnomaly counts a group total clamped to zero.
func (c *CheckoutMetrics) IncAnomaly() {
	if c == nil || c.anomalies == nil {
		return
	}
	c.anomalies.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
