package onecontext

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/internal/testutil"
	"github.com/onecontext/onecontext-go/octypes"
)

// serviceCall is one request seen by fakeService.
type serviceCall struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// fakeService emulates the OneContext API and the storage behind its
// presigned URLs on one httptest server.
type fakeService struct {
	srv *httptest.Server

	// failUploads lists display names whose presigned PUT returns 500
	failUploads map[string]bool

	mu    sync.Mutex
	calls []serviceCall
}

func newFakeService(t *testing.T) *fakeService {
	t.Helper()
	f := &fakeService{failUploads: map[string]bool{}}
	f.srv = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeService) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	f.calls = append(f.calls, serviceCall{Method: r.Method, Path: r.URL.Path, Header: r.Header.Clone(), Body: body})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/storage/"):
		name := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if f.failUploads[name] {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)

	case r.URL.Path == "/api/v3/context/file/presigned-upload-url":
		var req octypes.PresignRequest
		if err := json.Unmarshal(body, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		slots := make([]octypes.PresignedSlot, 0, len(req.FileNames))
		for _, name := range req.FileNames {
			id := uuid.NewString()
			slots = append(slots, octypes.PresignedSlot{
				PresignedURL: f.srv.URL + "/storage/" + id + "/" + name,
				ExpiresAt:    "2030-01-01T00:00:00Z",
				FileID:       id,
				GCSURI:       "gs://bucket/" + id,
			})
		}
		_ = json.NewEncoder(w).Encode(slots)

	case r.URL.Path == "/api/v3/context" && r.Method == http.MethodGet:
		_, _ = w.Write([]byte(`[{"name":"ctx"}]`))

	case r.URL.Path == "/api/v3/context/chunk/search" && r.Method == http.MethodPost:
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte(`{"error":"teapot"}`))

	default:
		_, _ = w.Write([]byte(`{"ok":true}`))
	}
}

func (f *fakeService) baseURL() string {
	return f.srv.URL + "/api/v3/"
}

func (f *fakeService) callsTo(path string) []serviceCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []serviceCall
	for _, c := range f.calls {
		if c.Path == path || (path == "/storage/" && strings.HasPrefix(c.Path, path)) {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeService) onlyCall(t *testing.T) serviceCall {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.Len(t, f.calls, 1)
	return f.calls[0]
}

func newTestClient(t *testing.T, svc *fakeService, opts ...octypes.Option) *Client {
	t.Helper()
	c, err := New("test-key", append([]octypes.Option{WithBaseURL(svc.baseURL())}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := New("")
		require.Error(t, err)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := NewFromConfig(nil)
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("invalid base url", func(t *testing.T) {
		_, err := New("key", WithBaseURL("://nope"))
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("metrics registered once per registry", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		_, err := New("key", WithMetrics(reg))
		require.NoError(t, err)

		_, err = New("key", WithMetrics(reg))
		assert.True(t, errors.IsConfiguration(err))
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := New("key")
		require.NoError(t, err)
		fsys, osFS := c.filesystem()
		assert.NotNil(t, fsys)
		assert.True(t, osFS)
		assert.NoError(t, c.Close())
	})
}

func TestClient_SetFilesystem(t *testing.T) {
	c, err := New("key")
	require.NoError(t, err)

	mem := testutil.NewMemFS(t, nil)
	c.SetFilesystem(mem)

	fsys, osFS := c.filesystem()
	assert.Same(t, mem, fsys)
	assert.False(t, osFS)
}

func TestClient_ContextOperations(t *testing.T) {
	tests := []struct {
		name       string
		call       func(*Client) (*octypes.Response, error)
		wantMethod string
		wantPath   string
		wantBody   string
	}{
		{
			name: "create context",
			call: func(c *Client) (*octypes.Response, error) {
				return c.CreateContext(context.Background(), octypes.CreateContextInput{ContextName: "docs"})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v3/context",
			wantBody:   `{"contextName":"docs"}`,
		},
		{
			name: "delete context",
			call: func(c *Client) (*octypes.Response, error) {
				return c.DeleteContext(context.Background(), octypes.DeleteContextInput{ContextName: "docs"})
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v3/context",
			wantBody:   `{"contextName":"docs"}`,
		},
		{
			name: "list contexts",
			call: func(c *Client) (*octypes.Response, error) {
				return c.ListContexts(context.Background())
			},
			wantMethod: http.MethodGet,
			wantPath:   "/api/v3/context",
		},
		{
			name: "get chunks",
			call: func(c *Client) (*octypes.Response, error) {
				return c.GetChunks(context.Background(), octypes.GetChunksInput{
					ContextName:     "docs",
					MetadataFilters: map[string]any{"$and": []any{map[string]any{"age": map[string]any{"$eq": 100}}}},
					Limit:           octypes.Int(5),
				})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v3/context/chunk",
			wantBody: `{"contextName":"docs","metadataFilters":{"$and":[{"age":{"$eq":100}}]},` +
				`"limit":5,"includeEmbedding":false}`,
		},
		{
			name: "list files",
			call: func(c *Client) (*octypes.Response, error) {
				return c.ListFiles(context.Background(), octypes.ListFilesInput{ContextName: "docs"})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v3/context/file",
			wantBody:   `{"contextName":"docs","skip":0,"limit":10,"sort":"date_created","metadataFilters":{}}`,
		},
		{
			name: "delete file",
			call: func(c *Client) (*octypes.Response, error) {
				return c.DeleteFile(context.Background(), octypes.DeleteFileInput{FileID: "f-1"})
			},
			wantMethod: http.MethodDelete,
			wantPath:   "/api/v3/context/file",
			wantBody:   `{"fileId":"f-1"}`,
		},
		{
			name: "download url",
			call: func(c *Client) (*octypes.Response, error) {
				return c.GetDownloadURL(context.Background(), octypes.DownloadURLInput{FileID: "f-1"})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v3/context/file/download",
			wantBody:   `{"fileId":"f-1"}`,
		},
		{
			name: "set openai key",
			call: func(c *Client) (*octypes.Response, error) {
				return c.SetOpenAIKey(context.Background(), octypes.SetOpenAIKeyInput{OpenAIAPIKey: "sk-1"})
			},
			wantMethod: http.MethodPost,
			wantPath:   "/api/v3/user/updateUserMeta",
			wantBody:   `{"openAIApiKey":"sk-1"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(t)
			c := newTestClient(t, svc, WithOpenAIKey("sk-header"))

			resp, err := tt.call(c)
			require.NoError(t, err)
			assert.True(t, resp.OK())

			call := svc.onlyCall(t)
			assert.Equal(t, tt.wantMethod, call.Method)
			assert.Equal(t, tt.wantPath, call.Path)
			assert.Equal(t, "test-key", call.Header.Get("API-KEY"))
			assert.Equal(t, "sk-header", call.Header.Get("OPENAI-API-KEY"))
			if tt.wantBody == "" {
				assert.Empty(t, call.Body)
			} else {
				assert.JSONEq(t, tt.wantBody, string(call.Body))
			}
		})
	}
}

func TestClient_Search(t *testing.T) {
	svc := newFakeService(t)
	c := newTestClient(t, svc)

	resp, err := c.Search(context.Background(), octypes.SearchInput{
		Query:       "refund policy",
		ContextName: "docs",
		TopK:        octypes.Int(3),
	})
	require.NoError(t, err, "non-2xx responses are returned, not raised")
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.False(t, resp.OK())

	call := svc.onlyCall(t)
	assert.JSONEq(t, `{
		"query": "refund policy",
		"contextName": "docs",
		"metadataFilters": {},
		"topK": 3,
		"semanticWeight": 0.5,
		"fullTextWeight": 0.5,
		"rrfK": 60,
		"includeEmbedding": false
	}`, string(call.Body))
}

func TestClient_ValidationHappensBeforeNetwork(t *testing.T) {
	doer := &testutil.MockHTTPDoer{}
	c, err := New("key", WithHTTPClient(doer))
	require.NoError(t, err)

	ctx := context.Background()
	calls := []func() error{
		func() error { _, err := c.CreateContext(ctx, octypes.CreateContextInput{}); return err },
		func() error { _, err := c.DeleteContext(ctx, octypes.DeleteContextInput{ContextName: " "}); return err },
		func() error {
			_, err := c.Search(ctx, octypes.SearchInput{Query: "q", ContextName: "c", SemanticWeight: octypes.Float64(2)})
			return err
		},
		func() error { _, err := c.GetChunks(ctx, octypes.GetChunksInput{ContextName: "c", Limit: octypes.Int(-1)}); return err },
		func() error { _, err := c.ListFiles(ctx, octypes.ListFilesInput{ContextName: "c", Skip: -1}); return err },
		func() error { _, err := c.DeleteFile(ctx, octypes.DeleteFileInput{}); return err },
		func() error { _, err := c.GetDownloadURL(ctx, octypes.DownloadURLInput{}); return err },
		func() error { _, err := c.SetOpenAIKey(ctx, octypes.SetOpenAIKeyInput{}); return err },
		func() error { _, err := c.UploadFiles(ctx, octypes.UploadFilesInput{ContextName: "c"}); return err },
		func() error {
			_, err := c.UploadDirectory(ctx, octypes.UploadDirectoryInput{Directory: "/tmp", ContextName: "c", MaxChunkSize: -5})
			return err
		},
		func() error {
			_, err := c.UploadDirectory(ctx, octypes.UploadDirectoryInput{
				Directory: "/tmp", ContextName: "c", Exclude: []string{"a/**/b/**"},
			})
			return err
		},
	}

	for i, call := range calls {
		err := call()
		require.Error(t, err, "call %d", i)
		assert.True(t, errors.IsValidation(err), "call %d: %v", i, err)
	}
	assert.Zero(t, doer.Calls())
}

func TestClient_NetworkErrorIsReturned(t *testing.T) {
	doer := &testutil.MockHTTPDoer{}
	c, err := New("key", WithHTTPClient(doer))
	require.NoError(t, err)

	_, err = c.ListContexts(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), "onecontext.listContexts")
	assert.Equal(t, 1, doer.Calls())
}
