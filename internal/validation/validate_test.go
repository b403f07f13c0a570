package validation

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/octypes"
)

func TestStruct_CreateContext(t *testing.T) {
	err := Struct("createContext", &octypes.CreateContextInput{ContextName: " "})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, err.Error(), "onecontext.createContext")
	assert.Contains(t, err.Error(), "contextName cannot be empty")

	assert.NoError(t, Struct("createContext", &octypes.CreateContextInput{ContextName: "ctx"}))
}

func TestValidateSearch_Defaults(t *testing.T) {
	in := &octypes.SearchInput{Query: "q", ContextName: "ctx"}
	require.NoError(t, ValidateSearch(in))

	require.NotNil(t, in.SemanticWeight)
	require.NotNil(t, in.FullTextWeight)
	assert.Equal(t, 0.5, *in.SemanticWeight)
	assert.Equal(t, 0.5, *in.FullTextWeight)
	assert.Equal(t, 60, in.RRFK)
	assert.NotNil(t, in.MetadataFilters)
	assert.Nil(t, in.TopK)
	assert.False(t, in.IncludeEmbedding)
}

func TestValidateSearch(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*octypes.SearchInput)
		errMsg string
	}{
		{"valid", func(*octypes.SearchInput) {}, ""},
		{"explicit zero weights", func(in *octypes.SearchInput) {
			in.SemanticWeight = octypes.Float64(0)
			in.FullTextWeight = octypes.Float64(1)
		}, ""},
		{"empty query", func(in *octypes.SearchInput) { in.Query = "" }, "query cannot be empty"},
		{"blank context", func(in *octypes.SearchInput) { in.ContextName = " " }, "contextName cannot be empty"},
		{"zero topK", func(in *octypes.SearchInput) { in.TopK = octypes.Int(0) }, "topK must be greater than 0"},
		{"negative topK", func(in *octypes.SearchInput) { in.TopK = octypes.Int(-3) }, "topK must be greater than 0"},
		{
			"semantic weight above range",
			func(in *octypes.SearchInput) { in.SemanticWeight = octypes.Float64(1.5) },
			"semanticWeight must be between 0 and 1",
		},
		{
			"full text weight below range",
			func(in *octypes.SearchInput) { in.FullTextWeight = octypes.Float64(-0.1) },
			"fullTextWeight must be between 0 and 1",
		},
		{"negative rrfK", func(in *octypes.SearchInput) { in.RRFK = -1 }, "rrfK must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &octypes.SearchInput{Query: "what is a context", ContextName: "ctx", TopK: octypes.Int(5)}
			tt.modify(in)

			err := ValidateSearch(in)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestValidateGetChunks(t *testing.T) {
	in := &octypes.GetChunksInput{ContextName: "ctx"}
	require.NoError(t, ValidateGetChunks(in))
	assert.NotNil(t, in.MetadataFilters)

	err := ValidateGetChunks(&octypes.GetChunksInput{ContextName: "ctx", Limit: octypes.Int(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be greater than 0")
}

func TestValidateListFiles(t *testing.T) {
	in := &octypes.ListFilesInput{ContextName: "ctx"}
	require.NoError(t, ValidateListFiles(in))
	assert.Equal(t, 0, in.Skip)
	assert.Equal(t, 10, in.Limit)
	assert.Equal(t, "date_created", in.Sort)

	err := ValidateListFiles(&octypes.ListFilesInput{ContextName: "ctx", Skip: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skip must be at least 0")

	err = ValidateListFiles(&octypes.ListFilesInput{ContextName: "ctx", Limit: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "limit must be greater than 0")
}

func TestValidateUploadFiles(t *testing.T) {
	t.Run("defaults max chunk size", func(t *testing.T) {
		in := &octypes.UploadFilesInput{
			Files:       []octypes.File{octypes.PathFile("/docs/a.pdf")},
			ContextName: "ctx",
		}
		require.NoError(t, ValidateUploadFiles(in))
		assert.Equal(t, 600, in.MaxChunkSize)
	})

	tests := []struct {
		name   string
		in     octypes.UploadFilesInput
		errMsg string
	}{
		{"no files", octypes.UploadFilesInput{ContextName: "ctx"}, "files must contain at least 1 item(s)"},
		{
			"negative chunk size",
			octypes.UploadFilesInput{Files: []octypes.File{octypes.PathFile("a.txt")}, ContextName: "ctx", MaxChunkSize: -1},
			"maxChunkSize must be greater than 0",
		},
		{
			"blank context",
			octypes.UploadFilesInput{Files: []octypes.File{octypes.PathFile("a.txt")}},
			"contextName cannot be empty",
		},
		{
			"empty path",
			octypes.UploadFilesInput{Files: []octypes.File{octypes.PathFile("")}, ContextName: "ctx"},
			"files[0]: path cannot be empty",
		},
		{
			"nil reader",
			octypes.UploadFilesInput{
				Files:       []octypes.File{octypes.PathFile("a.txt"), octypes.ContentFile("b.txt", nil, "")},
				ContextName: "ctx",
			},
			"files[1]: content reader cannot be nil",
		},
		{
			"zero value file",
			octypes.UploadFilesInput{Files: []octypes.File{{}}, ContextName: "ctx"},
			"files[0]: must be a path or content file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			err := ValidateUploadFiles(&in)
			require.Error(t, err)
			assert.True(t, errors.IsValidation(err))
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("content file", func(t *testing.T) {
		in := &octypes.UploadFilesInput{
			Files:       []octypes.File{octypes.ContentFile("", bytes.NewReader(nil), "")},
			ContextName: "ctx",
		}
		assert.NoError(t, ValidateUploadFiles(in))
	})
}

func TestValidateUploadDirectory(t *testing.T) {
	in := &octypes.UploadDirectoryInput{Directory: "/docs", ContextName: "ctx"}
	require.NoError(t, ValidateUploadDirectory(in))
	assert.Equal(t, 600, in.MaxChunkSize)

	err := ValidateUploadDirectory(&octypes.UploadDirectoryInput{ContextName: "ctx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory cannot be empty")
}

func TestValidatePresignResponse(t *testing.T) {
	slot := func() octypes.PresignedSlot {
		return octypes.PresignedSlot{
			PresignedURL: "https://storage.example.com/bucket/a.pdf?sig=1",
			ExpiresAt:    "2026-01-01T00:00:00Z",
			FileID:       uuid.NewString(),
			GCSURI:       "gs://bucket/a.pdf",
		}
	}

	t.Run("matching count", func(t *testing.T) {
		assert.NoError(t, ValidatePresignResponse([]octypes.PresignedSlot{slot(), slot()}, 2))
	})

	t.Run("count mismatch", func(t *testing.T) {
		err := ValidatePresignResponse([]octypes.PresignedSlot{slot()}, 3)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidServerResponse(err))
		assert.Contains(t, err.Error(), "expected 3 presigned URLs, got 1")
	})

	t.Run("relative url", func(t *testing.T) {
		s := slot()
		s.PresignedURL = "not a url"
		err := ValidatePresignResponse([]octypes.PresignedSlot{s}, 1)
		require.Error(t, err)
		assert.True(t, errors.IsInvalidServerResponse(err))
		assert.Contains(t, err.Error(), "presignedUrl must be an absolute URL")
	})

	t.Run("file id not a uuid", func(t *testing.T) {
		s := slot()
		s.FileID = "file-1"
		err := ValidatePresignResponse([]octypes.PresignedSlot{slot(), s}, 2)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slot 1: fileId must be a UUID")
	})
}
