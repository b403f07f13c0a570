// Package fs defines the filesystem abstraction used to read files and walk
// directories before they are uploaded.
package fs

import (
	iofs "io/fs"
	"os"
	"path/filepath"
)

// File represents an open file handle supporting basic read operations.
// Implementations should behave consistently with the standard library.
type File interface {
	Close() error
	Name() string
	Read(p []byte) (n int, err error)
	Stat() (iofs.FileInfo, error)
}

// Filesystem is the set of operations the client performs on local files:
// stat and read path files, and walk upload directories.
type Filesystem interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	Walk(root string, walkFn filepath.WalkFunc) error
}
