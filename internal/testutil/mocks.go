// Package testutil provides test utilities and mocks for client operations.
// This package is internal and should only be used for testing within the module.
package testutil

import (
	"context"
	"io"
	"net/http"
	"sync"

	"github.com/onecontext/onecontext-go/internal/transport"
	"github.com/onecontext/onecontext-go/octypes"
)

var _ transport.API = (*MockTransport)(nil)

// RecordedRequest is one call to MockTransport.Request.
type RecordedRequest struct {
	Method   string
	Endpoint string
	Body     any
	Header   http.Header
}

// RecordedPut is one call to MockTransport.Put. Body holds the bytes read.
type RecordedPut struct {
	URL         string
	ContentType string
	Body        []byte
	Size        int64
}

// MockTransport is a mock implementation of transport.API for testing.
// Each call is recorded; behaviour is customized through function fields.
// It is safe for concurrent use.
type MockTransport struct {
	RequestFunc func(ctx context.Context, method, endpoint string, body any, header http.Header) (*octypes.Response, error)
	PutFunc     func(ctx context.Context, presignedURL, contentType string, body []byte) (*octypes.Response, error)

	mu       sync.Mutex
	requests []RecordedRequest
	puts     []RecordedPut
}

// Request mocks an authenticated service request.
// Without RequestFunc it returns an empty 200 response.
func (m *MockTransport) Request(
	ctx context.Context,
	method, endpoint string,
	body any,
	header http.Header,
) (*octypes.Response, error) {
	m.mu.Lock()
	m.requests = append(m.requests, RecordedRequest{Method: method, Endpoint: endpoint, Body: body, Header: header})
	m.mu.Unlock()

	if m.RequestFunc != nil {
		return m.RequestFunc(ctx, method, endpoint, body, header)
	}
	return &octypes.Response{StatusCode: http.StatusOK, Status: "200 OK", Body: []byte("{}")}, nil
}

// Put mocks a presigned upload. The body is read fully before PutFunc is called.
// Without PutFunc it returns an empty 200 response.
func (m *MockTransport) Put(
	ctx context.Context,
	presignedURL, contentType string,
	body io.Reader,
	size int64,
) (*octypes.Response, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.puts = append(m.puts, RecordedPut{URL: presignedURL, ContentType: contentType, Body: data, Size: size})
	m.mu.Unlock()

	if m.PutFunc != nil {
		return m.PutFunc(ctx, presignedURL, contentType, data)
	}
	return &octypes.Response{StatusCode: http.StatusOK, Status: "200 OK"}, nil
}

// Requests returns a copy of the recorded Request calls.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// RequestsTo returns the recorded Request calls for endpoint.
func (m *MockTransport) RequestsTo(endpoint string) []RecordedRequest {
	var out []RecordedRequest
	for _, r := range m.Requests() {
		if r.Endpoint == endpoint {
			out = append(out, r)
		}
	}
	return out
}

// Puts returns a copy of the recorded Put calls.
func (m *MockTransport) Puts() []RecordedPut {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedPut(nil), m.puts...)
}

// CallCount returns the total number of Request and Put calls.
func (m *MockTransport) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests) + len(m.puts)
}

// MockHTTPDoer is a mock implementation of octypes.HTTPDoer.
type MockHTTPDoer struct {
	DoFunc func(req *http.Request) (*http.Response, error)

	mu    sync.Mutex
	calls int
}

// Do mocks an HTTP round trip. Without DoFunc it fails every request.
func (m *MockHTTPDoer) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return nil, io.ErrUnexpectedEOF
}

// Calls returns the number of Do invocations.
func (m *MockHTTPDoer) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
