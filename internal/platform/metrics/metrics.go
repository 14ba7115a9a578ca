package metrics

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "hrms_"

	resultSuccess = "success"
	resultError   = "error"
)

// Collector owns a private registry so tests and multiple servers do not
// collide on the default one.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	calculations    *prometheus.CounterVec
	jobRuns         *prometheus.CounterVec
	jobLatency      *prometheus.HistogramVec
	totalRequests   uint64
	errorRequests   uint64
	rateLimited     uint64
	totalDurationMs uint64
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by status code",
			},
			[]string{"code"},
		),
		requestLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		calculations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "gratuity_calculations_total",
				Help: "Total gratuity calculations by kind and result",
			},
			[]string{"kind", "result"},
		),
		jobRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "job_runs_total",
				Help: "Total background job runs by type and status",
			},
			[]string{"job", "status"},
		),
		jobLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "job_duration_seconds",
				Help:    "Background job duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"job"},
		),
	}
	c.registry.MustRegister(
		c.requests,
		c.requestLatency,
		c.calculations,
		c.jobRuns,
		c.jobLatency,
	)
	return c
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == http.StatusTooManyRequests {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))

	c.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	c.requestLatency.Observe(duration.Seconds())
}

func (c *Collector) ObserveCalculation(kind string, err error) {
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	c.calculations.WithLabelValues(kind, result).Inc()
}

func (c *Collector) ObserveJob(jobType, status string, duration time.Duration) {
	c.jobRuns.WithLabelValues(jobType, status).Inc()
	c.jobLatency.WithLabelValues(jobType).Observe(duration.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":    total,
		"errorsTotal":      errs,
		"rateLimitedTotal": limited,
		"avgDurationMs":    avg,
		"totalDurationMs":  totalMs,
	}
}
