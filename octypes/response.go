package octypes

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is a fully read service response.
// It is returned for every HTTP status; callers inspect OK to tell success from failure.
type Response struct {
	// StatusCode is the HTTP status code
	StatusCode int

	// Status is the HTTP status line text (e.g. "200 OK")
	Status string

	// Header holds the response headers
	Header http.Header

	// Body is the complete response body
	Body []byte
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

// String returns the body as text.
func (r *Response) String() string {
	return string(r.Body)
}
