// Package scanner discovers uploadable files under a local directory.
//
// A walk is lazy: entries are produced while the filesystem is traversed,
// and every range over the returned sequence starts a fresh traversal.
package scanner

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/onecontext/onecontext-go/fs"
)

// allowedExtensions lists the extensions eligible for directory uploads.
var allowedExtensions = map[string]struct{}{
	".txt":  {},
	".pdf":  {},
	".docx": {},
	".doc":  {},
}

// errStop ends a walk early when the consumer stops ranging.
var errStop = errors.New("scanner: stop")

// Entry is one eligible file found during a walk.
type Entry struct {
	// Path is the file's path on the filesystem, rooted like the walk root
	Path string

	// Name is the path relative to the walk root, using forward slashes
	Name string
}

// Scanner walks directories on a Filesystem.
type Scanner struct {
	fs       fs.Filesystem
	excludes []string
}

// NewScanner creates a Scanner over fsys. Files whose relative path matches
// one of excludes are skipped.
func NewScanner(fsys fs.Filesystem, excludes ...string) *Scanner {
	return &Scanner{fs: fsys, excludes: excludes}
}

// Allowed reports whether name has an extension eligible for upload.
// The comparison is case-insensitive.
func Allowed(name string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// Walk returns the eligible files under root in lexical order.
// A traversal error (permissions, a vanished directory, cancellation of ctx)
// is yielded once with a zero Entry and ends the sequence.
func (s *Scanner) Walk(ctx context.Context, root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		err := s.fs.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if info.IsDir() || !Allowed(path) {
				return nil
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return fmt.Errorf("relative path for %s: %w", path, err)
			}
			rel = filepath.ToSlash(rel)
			if s.excluded(rel) {
				return nil
			}

			if !yield(Entry{Path: path, Name: rel}, nil) {
				return errStop
			}
			return nil
		})

		if err == nil || errors.Is(err, errStop) {
			return
		}
		yield(Entry{}, fmt.Errorf("walk %s: %w", root, err))
	}
}

// Collect runs a walk to completion and returns every entry.
func (s *Scanner) Collect(ctx context.Context, root string) ([]Entry, error) {
	var entries []Entry
	for entry, err := range s.Walk(ctx, root) {
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
