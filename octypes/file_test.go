package octypes

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_Variants(t *testing.T) {
	t.Run("path file", func(t *testing.T) {
		f := PathFile("/docs/report.pdf")
		assert.Equal(t, FileKindPath, f.Kind())
		assert.Equal(t, "/docs/report.pdf", f.Path())
		assert.Nil(t, f.Reader())
		assert.Empty(t, f.Name())
	})

	t.Run("string file", func(t *testing.T) {
		f := StringFile("notes.txt", "hello", "text/plain")
		assert.Equal(t, FileKindContent, f.Kind())
		assert.Equal(t, "notes.txt", f.Name())
		assert.Equal(t, "text/plain", f.ContentType())
		assert.Empty(t, f.Path())

		data, err := io.ReadAll(f.Reader())
		require.NoError(t, err)
		assert.Equal(t, "hello", string(data))
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var f File
		assert.Equal(t, FileKind(0), f.Kind())
		assert.Equal(t, "invalid", f.Kind().String())
	})
}

func TestResponse_OK(t *testing.T) {
	tests := []struct {
		code int
		want bool
	}{
		{http.StatusOK, true},
		{http.StatusCreated, true},
		{http.StatusNoContent, true},
		{http.StatusMultipleChoices, false},
		{http.StatusBadRequest, false},
		{http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.code), func(t *testing.T) {
			r := &Response{StatusCode: tt.code}
			assert.Equal(t, tt.want, r.OK())
		})
	}
}

func TestResponse_Decode(t *testing.T) {
	r := &Response{StatusCode: http.StatusOK, Body: []byte(`{"contexts":["a","b"]}`)}

	var out struct {
		Contexts []string `json:"contexts"`
	}
	require.NoError(t, r.Decode(&out))
	assert.Equal(t, []string{"a", "b"}, out.Contexts)

	bad := &Response{Body: []byte("not json")}
	assert.Error(t, bad.Decode(&out))
}
