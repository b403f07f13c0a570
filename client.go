package onecontext

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/fs"
	"github.com/onecontext/onecontext-go/fs/billy"
	"github.com/onecontext/onecontext-go/internal/metrics"
	"github.com/onecontext/onecontext-go/internal/operations/upload"
	"github.com/onecontext/onecontext-go/internal/resolver"
	"github.com/onecontext/onecontext-go/internal/transport"
	"github.com/onecontext/onecontext-go/octypes"
)

// Client is a OneContext API client.
// It is safe for concurrent use; each call is independent of the others.
type Client struct {
	// api sends authenticated requests and presigned uploads
	api transport.API

	// httpClient is kept so idle connections can be closed
	httpClient octypes.HTTPDoer

	logger  *slog.Logger
	metrics *metrics.Collector

	uploadConcurrency int
	contentDetection  bool

	// mu protects the filesystem fields
	mu sync.RWMutex

	// fs is the filesystem abstraction for file operations
	fs fs.Filesystem

	// osFS is set when fs is the default OS filesystem, whose paths must be absolute
	osFS bool
}

// New creates a new client authenticated with apiKey.
// A blank key is a configuration error.
//
// Example:
//
//	client, err := onecontext.New(apiKey,
//	    onecontext.WithOpenAIKey(openAIKey),
//	    onecontext.WithUploadConcurrency(8),
//	)
func New(apiKey string, opts ...octypes.Option) (*Client, error) {
	cfg := &octypes.ClientConfig{APIKey: apiKey}
	for _, opt := range opts {
		opt(cfg)
	}
	return NewFromConfig(cfg)
}

// NewFromConfig creates a new client from a complete configuration,
// such as one produced by the config package.
func NewFromConfig(cfg *octypes.ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.NewError("client initialization", errors.ErrConfiguration).
			WithMessage("config cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	collector, err := metrics.New(cfg.MetricsRegisterer)
	if err != nil {
		return nil, errors.NewError("client initialization", errors.ErrConfiguration).
			WithMessage("register metrics: " + err.Error())
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	api, err := transport.New(transport.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		OpenAIKey:  cfg.OpenAIKey,
		HTTPClient: httpClient,
		Logger:     logger,
		Metrics:    collector,
	})
	if err != nil {
		return nil, err
	}

	filesystem := cfg.Filesystem
	osFS := false
	if filesystem == nil {
		// Default to OS filesystem rooted at /
		filesystem = billy.NewOSFS("/")
		osFS = true
	}

	logger.Debug("client initialized", slog.String("base_url", api.BaseURL()))

	return &Client{
		api:               api,
		httpClient:        httpClient,
		logger:            logger,
		metrics:           collector,
		uploadConcurrency: cfg.UploadConcurrency,
		contentDetection:  cfg.ContentDetection,
		fs:                filesystem,
		osFS:              osFS,
	}, nil
}

// SetFilesystem sets the filesystem implementation for the client.
// Paths given to later calls are passed to it unchanged.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
	c.osFS = false
}

// Close releases idle connections held by the default HTTP client.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if hc, ok := c.httpClient.(*http.Client); ok {
		hc.CloseIdleConnections()
	}
	return nil
}

// filesystem returns the current filesystem and whether paths must be made absolute.
func (c *Client) filesystem() (fs.Filesystem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fs, c.osFS
}

// uploader builds an Uploader reading from the current filesystem.
func (c *Client) uploader(fsys fs.Filesystem) *upload.Uploader {
	return upload.New(c.api, resolver.New(fsys, c.contentDetection), upload.Config{
		Logger:      c.logger,
		Metrics:     c.metrics,
		Concurrency: c.uploadConcurrency,
	})
}
