package octypes

import (
	"io"
	"strings"
)

// FileKind identifies which source a File reads its bytes from.
type FileKind int

// File source kinds. The zero value is not a valid kind.
const (
	// FileKindPath reads bytes from a path on the client's filesystem
	FileKindPath FileKind = iota + 1

	// FileKindContent reads bytes from a caller-supplied reader
	FileKindContent
)

// String returns a readable name for the kind.
func (k FileKind) String() string {
	switch k {
	case FileKindPath:
		return "path"
	case FileKindContent:
		return "content"
	default:
		return "invalid"
	}
}

// File describes one file to upload. It is either path based or content based;
// build it with PathFile, ContentFile or StringFile.
type File struct {
	kind        FileKind
	path        string
	name        string
	reader      io.Reader
	contentType string
}

// PathFile returns a File whose bytes are read from path.
// The display name is the base name of path and the media type is derived from
// its extension.
func PathFile(path string) File {
	return File{kind: FileKindPath, path: path}
}

// ContentFile returns a File whose bytes are read from r.
// An empty name is replaced by a generated unique name and an empty
// contentType by application/octet-stream.
func ContentFile(name string, r io.Reader, contentType string) File {
	return File{kind: FileKindContent, name: name, reader: r, contentType: contentType}
}

// StringFile returns a content-based File holding content.
func StringFile(name, content, contentType string) File {
	return ContentFile(name, strings.NewReader(content), contentType)
}

// Kind reports the source kind of the file.
func (f File) Kind() FileKind {
	return f.kind
}

// Path returns the filesystem path of a path-based file.
func (f File) Path() string {
	return f.path
}

// Name returns the caller-supplied name of a content-based file.
func (f File) Name() string {
	return f.name
}

// Reader returns the byte source of a content-based file.
func (f File) Reader() io.Reader {
	return f.reader
}

// ContentType returns the caller-supplied media type of a content-based file.
func (f File) ContentType() string {
	return f.contentType
}
