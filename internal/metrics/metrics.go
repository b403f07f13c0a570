// Package metrics holds the Prometheus collectors for client requests and uploads.
//
// A nil *Collector is valid and records nothing, so callers never need to
// check whether metrics were configured.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Upload results used as label values.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector groups the client's collectors.
type Collector struct {
	requests      *prometheus.CounterVec
	latency       *prometheus.HistogramVec
	fileUploads   *prometheus.CounterVec
	uploadedBytes prometheus.Counter
	batches       *prometheus.CounterVec
}

// New creates a Collector and registers it on reg.
// A nil reg returns a nil Collector.
func New(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		return nil, nil
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onecontext",
		Subsystem: "client",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests sent, partitioned by endpoint, method and status code.",
	}, []string{"endpoint", "method", "code"}) // code = "0" for transport failures
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "onecontext",
		Subsystem: "client",
		Name:      "request_duration_seconds",
		Help:      "Histogram of HTTP request latencies.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint", "method"})
	fileUploads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onecontext",
		Subsystem: "upload",
		Name:      "files_total",
		Help:      "Total number of per-file presigned uploads by result.",
	}, []string{"result"})
	uploadedBytes := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "onecontext",
		Subsystem: "upload",
		Name:      "bytes_total",
		Help:      "Total bytes successfully sent to presigned URLs.",
	})
	batches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onecontext",
		Subsystem: "upload",
		Name:      "batches_total",
		Help:      "Total number of upload batches by result.",
	}, []string{"result"})

	for _, c := range []prometheus.Collector{requests, latency, fileUploads, uploadedBytes, batches} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Collector{
		requests:      requests,
		latency:       latency,
		fileUploads:   fileUploads,
		uploadedBytes: uploadedBytes,
		batches:       batches,
	}, nil
}

// ObserveRequest records one HTTP request. status is 0 when no response was received.
func (c *Collector) ObserveRequest(endpoint, method string, status int, dur time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(endpoint, method).Observe(dur.Seconds())
}

// ObserveFileUpload records the outcome of one presigned upload.
func (c *Collector) ObserveFileUpload(bytes int64, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.fileUploads.WithLabelValues(ResultError).Inc()
		return
	}
	c.fileUploads.WithLabelValues(ResultOK).Inc()
	if bytes > 0 {
		c.uploadedBytes.Add(float64(bytes))
	}
}

// ObserveBatch records the outcome of one UploadFiles call.
func (c *Collector) ObserveBatch(err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.batches.WithLabelValues(ResultError).Inc()
		return
	}
	c.batches.WithLabelValues(ResultOK).Inc()
}
