// Package resolver turns file descriptors into named byte sources ready for upload.
package resolver

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/onecontext/onecontext-go/fs"
	"github.com/onecontext/onecontext-go/octypes"
)

// sniffLen is the number of leading bytes inspected when detecting content.
const sniffLen = 3072

// mimeTypes maps lower-case file extensions to media types.
var mimeTypes = map[string]string{
	".txt":  "text/plain",
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".md":   "text/markdown",
	".html": "text/html",
	".csv":  "text/csv",
	".json": "application/json",
}

// ContentTypeByExtension returns the media type registered for name's extension.
func ContentTypeByExtension(name string) (string, bool) {
	ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]
	return ct, ok
}

// DisplayName returns the name a file is reported under: the base name of a
// path file, the supplied name of a content file, or a generated UUID.
func DisplayName(f octypes.File) string {
	switch f.Kind() {
	case octypes.FileKindPath:
		return filepath.Base(f.Path())
	case octypes.FileKindContent:
		if f.Name() != "" {
			return f.Name()
		}
	}
	return uuid.NewString()
}

// Resolved is a file ready to be sent to a presigned URL.
type Resolved struct {
	// Name is the display name passed in to Resolve
	Name string

	// ContentType is the media type sent with the upload
	ContentType string

	// Body yields the file bytes
	Body io.Reader

	// Size is the body length in bytes, or -1 when the source cannot report it
	Size int64
}

// Resolver reads path files from a Filesystem and classifies their content.
type Resolver struct {
	fs     fs.Filesystem
	detect bool
}

// New creates a Resolver reading from fsys. When detect is set, files with an
// unrecognized extension and content files without a media type are sniffed.
func New(fsys fs.Filesystem, detect bool) *Resolver {
	return &Resolver{fs: fsys, detect: detect}
}

// Resolve produces the byte source and media type for f, reported as name.
func (r *Resolver) Resolve(f octypes.File, name string) (*Resolved, error) {
	switch f.Kind() {
	case octypes.FileKindPath:
		return r.resolvePath(f.Path(), name)
	case octypes.FileKindContent:
		return r.resolveContent(f, name)
	default:
		return nil, fmt.Errorf("resolve %q: unknown file kind %s", name, f.Kind())
	}
}

func (r *Resolver) resolvePath(path, name string) (*Resolved, error) {
	info, err := r.fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("resolve %q: is a directory", path)
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", path, err)
	}

	ct, ok := ContentTypeByExtension(path)
	if !ok {
		ct = octypes.DefaultContentType
		if r.detect && len(data) > 0 {
			ct = mimetype.Detect(data).String()
		}
	}

	return &Resolved{
		Name:        name,
		ContentType: ct,
		Body:        bytes.NewReader(data),
		Size:        int64(len(data)),
	}, nil
}

func (r *Resolver) resolveContent(f octypes.File, name string) (*Resolved, error) {
	if f.Reader() == nil {
		return nil, fmt.Errorf("resolve %q: nil content reader", name)
	}

	res := &Resolved{
		Name:        name,
		ContentType: f.ContentType(),
		Body:        f.Reader(),
		Size:        -1,
	}
	// Readers such as strings.Reader report their unread length.
	if l, ok := f.Reader().(interface{ Len() int }); ok {
		res.Size = int64(l.Len())
	}
	if res.ContentType != "" {
		return res, nil
	}

	res.ContentType = octypes.DefaultContentType
	if r.detect {
		br := bufio.NewReaderSize(f.Reader(), sniffLen)
		// A short read still leaves the available prefix.
		head, _ := br.Peek(sniffLen)
		if len(head) > 0 {
			res.ContentType = mimetype.Detect(head).String()
		}
		res.Body = br
	}

	return res, nil
}
