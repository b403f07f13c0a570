package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/onecontext/onecontext-go/octypes"
)

// API is the subset of Transport used by operations.
// It exists so operations can be tested against a mock.
type API interface {
	Request(ctx context.Context, method, endpoint string, body any, header http.Header) (*octypes.Response, error)
	Put(ctx context.Context, presignedURL, contentType string, body io.Reader, size int64) (*octypes.Response, error)
}

var _ API = (*Transport)(nil)
