// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records HTTP and delivery metrics against a Prometheus registry.
type Collector struct {
	httpRequests  *prometheus.CounterVec
	httpLatency   prometheus.Histogram
	emailsSent    prometheus.Counter
	emailsFailed  prometheus.Counter
	subscriptions prometheus.Counter
	confirmations prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "newsletter_http_requests_total",
			Help: "HTTP responses by status code and route.",
		}, []string{"status_code", "route"}),
		httpLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "newsletter_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		emailsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_emails_sent_total",
			Help: "Emails accepted by the delivery provider.",
		}),
		emailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_emails_failed_total",
			Help: "Emails the delivery provider rejected or that failed in transit.",
		}),
		subscriptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_subscriptions_total",
			Help: "New pending subscriptions created.",
		}),
		confirmations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "newsletter_confirmations_total",
			Help: "Subscriptions confirmed via token.",
		}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.httpLatency,
		c.emailsSent,
		c.emailsFailed,
		c.subscriptions,
		c.confirmations,
	)

	return c
}

// RecordHTTPRequest records one finished HTTP request.
func (c *Collector) RecordHTTPRequest(statusCode int, route string, duration time.Duration) {
	c.httpRequests.WithLabelValues(strconv.Itoa(statusCode), route).Inc()
	c.httpLatency.Observe(duration.Seconds())
}

// RecordEmailSent records one accepted outbound email.
func (c *Collector) RecordEmailSent() { c.emailsSent.Inc() }

// RecordEmailFailed records one failed outbound email.
func (c *Collector) RecordEmailFailed() { c.emailsFailed.Inc() }

// RecordSubscription records one new pending subscription.
func (c *Collector) RecordSubscription() { c.subscriptions.Inc() }

// RecordConfirmation records one confirmed subscription.
func (c *Collector) RecordConfirmation() { c.confirmations.Inc() }

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
