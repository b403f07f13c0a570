// Package octypes provides shared type definitions for the OneContext module.
package octypes

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onecontext/onecontext-go/fs"
)

// DefaultBaseURL is the service root used when no base URL is configured.
const DefaultBaseURL = "https://app.onecontext.ai/api/v3/"

// DefaultContentType is the media type used when no better type is known.
const DefaultContentType = "application/octet-stream"

// HTTPDoer is the subset of *http.Client used by the client.
// Any implementation may be supplied for proxies, tracing or tests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration options for the OneContext client.
type ClientConfig struct {
	// APIKey is sent as the API-KEY header on every service request (required)
	APIKey string

	// OpenAIKey is sent as the OPENAI-API-KEY header when set
	OpenAIKey string

	// BaseURL is the service root; endpoints are resolved against it
	BaseURL string

	// HTTPClient performs the HTTP requests; defaults to a client without timeout
	HTTPClient HTTPDoer

	// Logger receives structured logs; nil disables logging
	Logger *slog.Logger

	// Filesystem is used to read path-based files and walk directories
	Filesystem fs.Filesystem

	// MetricsRegisterer receives the client's Prometheus collectors when set
	MetricsRegisterer prometheus.Registerer

	// UploadConcurrency bounds in-flight presigned PUTs; 0 means unbounded
	UploadConcurrency int

	// ContentDetection sniffs file content when the extension is not recognized
	ContentDetection bool
}

// Option is a functional option for configuring the client.
type Option func(*ClientConfig)

// Int returns a pointer to v. It is a convenience for optional numeric inputs.
func Int(v int) *int {
	return &v
}

// Float64 returns a pointer to v. It is a convenience for optional numeric inputs.
func Float64(v float64) *float64 {
	return &v
}
