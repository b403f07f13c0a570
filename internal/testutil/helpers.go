package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/onecontext/onecontext-go/fs/billy"
	"github.com/onecontext/onecontext-go/octypes"
)

// JSONResponse builds a response with v encoded as the body.
func JSONResponse(t testing.TB, status int, v any) *octypes.Response {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal response body: %v", err)
	}
	return &octypes.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       body,
	}
}

// PresignedSlots returns one valid slot per name, in order. Each presigned URL
// is rooted at baseURL and ends with the name.
func PresignedSlots(baseURL string, names ...string) []octypes.PresignedSlot {
	slots := make([]octypes.PresignedSlot, 0, len(names))
	for _, name := range names {
		id := uuid.NewString()
		slots = append(slots, octypes.PresignedSlot{
			PresignedURL: fmt.Sprintf("%s/upload/%s/%s", baseURL, id, name),
			ExpiresAt:    "2030-01-01T00:00:00Z",
			FileID:       id,
			GCSURI:       fmt.Sprintf("gs://onecontext-test/%s/%s", id, name),
		})
	}
	return slots
}

// NewMemFS returns an in-memory filesystem containing files (path to content).
func NewMemFS(t testing.TB, files map[string]string) *billy.FS {
	t.Helper()
	fsys := billy.NewInMemoryFS()
	for path, content := range files {
		if err := fsys.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	return fsys
}

// DecodeBody re-encodes a recorded request body into T.
func DecodeBody[T any](t testing.TB, body any) T {
	t.Helper()
	var out T
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal recorded body: %v", err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal recorded body: %v", err)
	}
	return out
}
