package octypes

// Default values applied to inputs before validation.
const (
	DefaultMaxChunkSize   = 600
	DefaultSemanticWeight = 0.5
	DefaultFullTextWeight = 0.5
	DefaultRRFK           = 60
	DefaultListFilesLimit = 10
	DefaultListFilesSort  = "date_created"
)

// CreateContextInput is the request for CreateContext.
type CreateContextInput struct {
	ContextName string `json:"contextName" validate:"notblank"`
}

// DeleteContextInput is the request for DeleteContext.
type DeleteContextInput struct {
	ContextName string `json:"contextName" validate:"notblank"`
}

// SearchInput is the request for a hybrid semantic and full-text search.
type SearchInput struct {
	Query       string `json:"query"       validate:"notblank"`
	ContextName string `json:"contextName" validate:"notblank"`

	// MetadataFilters restricts candidate chunks, e.g. {"$and": [{"age": {"$eq": 100}}]}
	MetadataFilters map[string]any `json:"metadataFilters"`

	// TopK limits the number of results; nil lets the service decide
	TopK *int `json:"topK" validate:"omitnil,gt=0"`

	// SemanticWeight and FullTextWeight weight the two rankings; both default to 0.5
	SemanticWeight *float64 `json:"semanticWeight" validate:"omitnil,gte=0,lte=1"`
	FullTextWeight *float64 `json:"fullTextWeight" validate:"omitnil,gte=0,lte=1"`

	// RRFK is the reciprocal rank fusion constant; 0 means the default of 60
	RRFK int `json:"rrfK" validate:"gt=0"`

	IncludeEmbedding bool `json:"includeEmbedding"`
}

// GetChunksInput is the request for metadata-filtered retrieval without a query.
type GetChunksInput struct {
	ContextName     string         `json:"contextName"     validate:"notblank"`
	MetadataFilters map[string]any `json:"metadataFilters"`

	// Limit caps the number of chunks; nil lets the service decide
	Limit *int `json:"limit" validate:"omitnil,gt=0"`

	IncludeEmbedding bool `json:"includeEmbedding"`
}

// ListFilesInput is the request for ListFiles.
type ListFilesInput struct {
	ContextName     string         `json:"contextName"     validate:"notblank"`
	Skip            int            `json:"skip"            validate:"gte=0"`
	Limit           int            `json:"limit"           validate:"gt=0"`
	Sort            string         `json:"sort"`
	MetadataFilters map[string]any `json:"metadataFilters"`
}

// DeleteFileInput is the request for DeleteFile.
type DeleteFileInput struct {
	FileID string `json:"fileId" validate:"notblank"`
}

// DownloadURLInput is the request for GetDownloadURL.
type DownloadURLInput struct {
	FileID string `json:"fileId" validate:"notblank"`
}

// SetOpenAIKeyInput is the request for SetOpenAIKey.
type SetOpenAIKeyInput struct {
	OpenAIAPIKey string `json:"openAIApiKey" validate:"notblank"`
}

// UploadFilesInput is the request for UploadFiles.
type UploadFilesInput struct {
	Files       []File `validate:"min=1"`
	ContextName string `validate:"notblank"`

	// MetadataJSON is attached to every file in the batch
	MetadataJSON map[string]any

	// MaxChunkSize bounds server-side chunks; 0 means the default of 600
	MaxChunkSize int `validate:"gt=0"`
}

// UploadDirectoryInput is the request for UploadDirectory.
type UploadDirectoryInput struct {
	Directory    string `validate:"notblank"`
	ContextName  string `validate:"notblank"`
	MetadataJSON map[string]any
	MaxChunkSize int `validate:"gt=0"`

	// Exclude skips files whose path relative to Directory matches a pattern.
	// "dir/" excludes a subtree, "a**b" matches at any depth, anything else is
	// a glob tried against the relative path and the base name.
	Exclude []string
}
