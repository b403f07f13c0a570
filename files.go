package onecontext

import (
	"context"
	"fmt"
	"net/http"

	"github.com/onecontext/onecontext-go/errors"
	"github.com/onecontext/onecontext-go/fs"
	"github.com/onecontext/onecontext-go/internal/operations/upload"
	"github.com/onecontext/onecontext-go/internal/scanner"
	"github.com/onecontext/onecontext-go/internal/validation"
	"github.com/onecontext/onecontext-go/octypes"
)

// ListFiles lists the files in a context, newest first by default.
func (c *Client) ListFiles(ctx context.Context, in octypes.ListFilesInput) (*octypes.Response, error) {
	if err := validation.ValidateListFiles(&in); err != nil {
		return nil, err
	}
	return c.call(ctx, "listFiles", http.MethodPost, endpointFile, in, in.ContextName)
}

// DeleteFile deletes one file and its chunks.
func (c *Client) DeleteFile(ctx context.Context, in octypes.DeleteFileInput) (*octypes.Response, error) {
	if err := validation.Struct("deleteFile", &in); err != nil {
		return nil, err
	}
	return c.call(ctx, "deleteFile", http.MethodDelete, endpointFile, in, "")
}

// GetDownloadURL requests a time-limited download URL for a file.
func (c *Client) GetDownloadURL(ctx context.Context, in octypes.DownloadURLInput) (*octypes.Response, error) {
	if err := validation.Struct("getDownloadURL", &in); err != nil {
		return nil, err
	}
	return c.call(ctx, "getDownloadURL", http.MethodPost, endpointFileDownload, in, "")
}

// UploadFiles uploads a batch of files through presigned URLs and asks the
// service to process the ones that arrived.
//
// Files that fail to upload are skipped and logged; the call succeeds as long
// as at least one file arrives, and returns the processing response unchanged.
// When no file arrives it returns an error matching errors.IsNoFilesUploaded.
//
// Example:
//
//	resp, err := client.UploadFiles(ctx, octypes.UploadFilesInput{
//	    Files: []octypes.File{
//	        octypes.PathFile("docs/handbook.pdf"),
//	        octypes.StringFile("notes.txt", "meeting notes", "text/plain"),
//	    },
//	    ContextName:  "handbook",
//	    MetadataJSON: map[string]any{"team": "support"},
//	})
func (c *Client) UploadFiles(ctx context.Context, in octypes.UploadFilesInput) (*octypes.Response, error) {
	if err := validation.ValidateUploadFiles(&in); err != nil {
		return nil, err
	}

	fsys, osFS := c.filesystem()
	files := in.Files
	if osFS {
		var err error
		if files, err = absolutize(files); err != nil {
			return nil, errors.NewContextError("uploadFiles", in.ContextName, err)
		}
	}

	return c.uploader(fsys).Upload(ctx, upload.Request{
		Files:        files,
		ContextName:  in.ContextName,
		MaxChunkSize: in.MaxChunkSize,
		MetadataJSON: in.MetadataJSON,
	})
}

// UploadDirectory uploads every .txt, .pdf, .docx and .doc file below a
// directory, recursively, as one batch. Each file is reported under its base name.
//
// A directory without eligible files returns an error matching
// errors.IsNoFilesFound before any request is sent.
func (c *Client) UploadDirectory(ctx context.Context, in octypes.UploadDirectoryInput) (*octypes.Response, error) {
	const op = "uploadDirectory"

	if err := validation.ValidateUploadDirectory(&in); err != nil {
		return nil, err
	}
	if err := scanner.ValidatePatterns(in.Exclude); err != nil {
		return nil, errors.NewValidationError(op, err.Error())
	}

	fsys, osFS := c.filesystem()
	root := in.Directory
	if osFS {
		abs, err := fs.GetAbs(root)
		if err != nil {
			return nil, errors.NewContextError(op, in.ContextName, err)
		}
		root = abs
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.NewContextError(op, in.ContextName, err)
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError(op, fmt.Sprintf("%s is not a directory", in.Directory))
	}

	entries, err := scanner.NewScanner(fsys, in.Exclude...).Collect(ctx, root)
	if err != nil {
		return nil, errors.NewContextError(op, in.ContextName, err)
	}
	if len(entries) == 0 {
		return nil, errors.NewContextError(op, in.ContextName, errors.ErrNoFilesFound).
			WithMessage(in.Directory)
	}

	files := make([]octypes.File, 0, len(entries))
	for _, e := range entries {
		files = append(files, octypes.PathFile(e.Path))
	}

	return c.uploader(fsys).Upload(ctx, upload.Request{
		Files:        files,
		ContextName:  in.ContextName,
		MaxChunkSize: in.MaxChunkSize,
		MetadataJSON: in.MetadataJSON,
	})
}

// absolutize resolves relative path files against the working directory.
// Base names, and so display names, are unchanged.
func absolutize(files []octypes.File) ([]octypes.File, error) {
	out := make([]octypes.File, len(files))
	for i, f := range files {
		if f.Kind() != octypes.FileKindPath {
			out[i] = f
			continue
		}
		abs, err := fs.GetAbs(f.Path())
		if err != nil {
			return nil, err
		}
		out[i] = octypes.PathFile(abs)
	}
	return out, nil
}
