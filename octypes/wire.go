package octypes

// PresignRequest asks the service for one presigned upload URL per file name.
type PresignRequest struct {
	FileNames   []string `json:"fileNames"`
	ContextName string   `json:"contextName"`
}

// PresignedSlot is one presigned upload target, returned in request order.
// A slot is valid until ExpiresAt and is never reused across uploads.
type PresignedSlot struct {
	PresignedURL string `json:"presignedUrl" validate:"required,url"`
	ExpiresAt    string `json:"expiresAt"`
	FileID       string `json:"fileId"       validate:"required,uuid"`
	GCSURI       string `json:"gcsUri"`
}

// UploadedFile records a file whose bytes reached its presigned URL.
type UploadedFile struct {
	FileID       string         `json:"fileId"`
	FileName     string         `json:"fileName"`
	FileType     string         `json:"fileType"`
	GCSURI       string         `json:"gcsUri"`
	MetadataJSON map[string]any `json:"metadataJson,omitempty"`
}

// ProcessUploadedRequest tells the service which uploaded files to chunk and embed.
type ProcessUploadedRequest struct {
	Files        []UploadedFile `json:"files"`
	ContextName  string         `json:"contextName"`
	MaxChunkSize int            `json:"maxChunkSize"`
}
