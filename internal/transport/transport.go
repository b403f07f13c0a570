// Package transport issues HTTP requests to the OneContext service.
//
// Service requests always carry the API-KEY header, plus the OPENAI-API-KEY
// header when one is configured. Presigned uploads go straight to storage and
// carry no credentials. Both return the complete response for any HTTP status;
// only network-level failures (DNS, refused connections, cancellation) are
// returned as errors.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/internal/metrics"
	"github.com/onecontext/onecontext-go/octypes"
)

// Credential header names.
const (
	HeaderAPIKey    = "API-KEY"
	HeaderOpenAIKey = "OPENAI-API-KEY"
)

// Config holds the settings for a Transport.
type Config struct {
	BaseURL    string
	APIKey     string
	OpenAIKey  string
	HTTPClient octypes.HTTPDoer
	Logger     *slog.Logger
	Metrics    *metrics.Collector
}

// Transport performs authenticated service requests and presigned uploads.
// It is safe for concurrent use; all fields are read-only after New.
type Transport struct {
	base      *url.URL
	apiKey    string
	openAIKey string
	http      octypes.HTTPDoer
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// New validates cfg and returns a Transport.
// A missing API key or an unparsable base URL is a configuration error.
func New(cfg Config) (*Transport, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.NewError("transport", errors.ErrConfiguration).
			WithMessage("API key cannot be empty")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = octypes.DefaultBaseURL
	}
	// Endpoints are relative; a trailing slash keeps the last path segment.
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errors.NewError("transport", errors.ErrConfiguration).
			WithMessage(fmt.Sprintf("invalid base URL %q", cfg.BaseURL))
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Transport{
		base:      base,
		apiKey:    cfg.APIKey,
		openAIKey: cfg.OpenAIKey,
		http:      httpClient,
		logger:    logger,
		metrics:   cfg.Metrics,
	}, nil
}

// BaseURL returns the resolved service root.
func (t *Transport) BaseURL() string {
	return t.base.String()
}

// Request sends an authenticated request to endpoint, relative to the base URL.
// A non-nil body is JSON encoded. Extra headers are applied before the
// credential headers, so they cannot replace them.
func (t *Transport) Request(
	ctx context.Context,
	method, endpoint string,
	body any,
	header http.Header,
) (*octypes.Response, error) {
	ref, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	target := t.base.ResolveReference(ref)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, endpoint, err)
	}
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(HeaderAPIKey, t.apiKey)
	if t.openAIKey != "" {
		req.Header.Set(HeaderOpenAIKey, t.openAIKey)
	}

	return t.do(req, endpoint)
}

// Put uploads body to a presigned URL with the given content type.
// No credential headers are attached. size is used as Content-Length when
// non-negative.
func (t *Transport) Put(
	ctx context.Context,
	presignedURL, contentType string,
	body io.Reader,
	size int64,
) (*octypes.Response, error) {
	// A zero ContentLength with a non-nil body would be sent chunked.
	if size == 0 {
		body = http.NoBody
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, presignedURL, body)
	if err != nil {
		return nil, fmt.Errorf("build presigned PUT request: %w", err)
	}
	if size > 0 {
		req.ContentLength = size
	}
	req.Header.Set("Content-Type", contentType)

	return t.do(req, "presigned-put")
}

func (t *Transport) do(req *http.Request, endpoint string) (*octypes.Response, error) {
	start := time.Now()

	resp, err := t.http.Do(req)
	if err != nil {
		t.metrics.ObserveRequest(endpoint, req.Method, 0, time.Since(start))
		t.logger.Debug("request failed",
			slog.String("method", req.Method),
			slog.String("endpoint", endpoint),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.metrics.ObserveRequest(endpoint, req.Method, resp.StatusCode, time.Since(start))
		return nil, fmt.Errorf("%s %s: read body: %w", req.Method, endpoint, err)
	}

	t.metrics.ObserveRequest(endpoint, req.Method, resp.StatusCode, time.Since(start))
	t.logger.Debug("request complete",
		slog.String("method", req.Method),
		slog.String("endpoint", endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	return &octypes.Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
