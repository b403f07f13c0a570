package onecontext

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/onecontext/onecontext-go/fs"
	"github.com/onecontext/onecontext-go/octypes"
)

// WithBaseURL sets the service root that endpoints are resolved against.
// Default is https://app.onecontext.ai/api/v3/.
func WithBaseURL(baseURL string) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.BaseURL = baseURL
	}
}

// WithOpenAIKey sets a key sent as the OPENAI-API-KEY header on every service request.
func WithOpenAIKey(key string) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.OpenAIKey = key
	}
}

// WithHTTPClient sets the HTTP client used for service requests and presigned uploads.
// No timeout is applied by default; supply a client with one if needed.
func WithHTTPClient(client octypes.HTTPDoer) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.HTTPClient = client
	}
}

// WithLogger sets a custom logger for the client.
// If not provided, logging is disabled.
func WithLogger(logger *slog.Logger) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.Logger = logger
	}
}

// WithFilesystem sets the filesystem used to read path files and walk directories.
// Default is the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithMetrics registers the client's Prometheus collectors on reg.
func WithMetrics(reg prometheus.Registerer) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.MetricsRegisterer = reg
	}
}

// WithUploadConcurrency bounds the number of files sent to presigned URLs at once.
// Default is no bound: every file in a batch is sent concurrently.
func WithUploadConcurrency(n int) octypes.Option {
	return func(c *octypes.ClientConfig) {
		if n > 0 {
			c.UploadConcurrency = n
		}
	}
}

// WithContentDetection enables content sniffing for files whose media type
// cannot be derived from their extension.
func WithContentDetection(enabled bool) octypes.Option {
	return func(c *octypes.ClientConfig) {
		c.ContentDetection = enabled
	}
}
