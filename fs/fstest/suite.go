// Package fstest provides a conformance suite for fs.Filesystem
// implementations.
//
// The suite checks the behavior the client relies on when it resolves path
// files and walks upload directories: reads, stats, not-exist errors and a
// lexically ordered walk. Each subtest receives a fresh filesystem.
//
// Example usage:
//
//	func TestMyFilesystem(t *testing.T) {
//	    fstest.TestSuite(t, func(t *testing.T) (fstest.Filesystem, string) {
//	        return myfs.New(), "/"
//	    })
//	}
package fstest

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/onecontext/onecontext-go/fs"
)

// Filesystem is an fs.Filesystem the suite can stage files on and open.
type Filesystem interface {
	fs.Filesystem
	Open(name string) (fs.File, error)
	ReadDir(dirname string) ([]os.FileInfo, error)
	MkdirAll(path string, perm os.FileMode) error
	WriteFile(filename string, data []byte, perm os.FileMode) error
}

// NewFunc returns an empty filesystem and the root directory tests write below.
type NewFunc func(t *testing.T) (Filesystem, string)

// TestSuite runs every conformance test against filesystems built by newFS.
func TestSuite(t *testing.T, newFS NewFunc) {
	TestSuiteWithSkip(t, newFS, nil)
}

// TestSuiteWithSkip runs the suite, skipping the named top-level groups
// (e.g. "Walk") for implementations with documented differences.
func TestSuiteWithSkip(t *testing.T, newFS NewFunc, skip []string) {
	groups := []struct {
		name string
		run  func(t *testing.T, filesystem Filesystem, root string)
	}{
		{"Read", TestRead},
		{"Walk", TestWalk},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if slices.Contains(skip, g.name) {
				t.Skip("skipped by provider configuration")
			}
			filesystem, root := newFS(t)
			g.run(t, filesystem, root)
		})
	}
}

// join builds a path below root using the filesystem's separator.
func join(root string, elem ...string) string {
	return filepath.Join(append([]string{root}, elem...)...)
}
