package fstest

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

// TestWalk checks that Walk visits every entry in lexical order, honors
// filepath.SkipDir and reports a missing root.
func TestWalk(t *testing.T, filesystem Filesystem, root string) {
	base := join(root, "walk")
	for _, name := range []string{"b.txt", "a/z.doc", "a/b/c.pdf", "skip/hidden.txt", "c.docx"} {
		path := join(base, filepath.FromSlash(name))
		if err := filesystem.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): setup failed: %v", filepath.Dir(path), err)
		}
		if err := filesystem.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("WriteFile(%q): setup failed: %v", path, err)
		}
	}

	walk := func(t *testing.T, skip string) []string {
		t.Helper()
		var got []string
		err := filesystem.Walk(base, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(base, path)
			if relErr != nil {
				return relErr
			}
			rel = filepath.ToSlash(rel)
			if info.IsDir() && rel == skip {
				return filepath.SkipDir
			}
			if !info.IsDir() {
				got = append(got, rel)
			}
			return nil
		})
		if err != nil {
			t.Fatalf("Walk(%q): got error %v, want nil", base, err)
		}
		return got
	}

	t.Run("LexicalOrder", func(t *testing.T) {
		want := []string{"a/b/c.pdf", "a/z.doc", "b.txt", "c.docx", "skip/hidden.txt"}
		if got := walk(t, ""); !slices.Equal(got, want) {
			t.Errorf("Walk(%q): got %v, want %v", base, got, want)
		}
	})

	t.Run("SkipDir", func(t *testing.T) {
		want := []string{"a/b/c.pdf", "a/z.doc", "b.txt", "c.docx"}
		if got := walk(t, "skip"); !slices.Equal(got, want) {
			t.Errorf("Walk(%q) skipping %q: got %v, want %v", base, "skip", got, want)
		}
	})

	t.Run("CallbackError", func(t *testing.T) {
		stop := errors.New("stop")
		err := filesystem.Walk(base, func(string, os.FileInfo, error) error { return stop })
		if !errors.Is(err, stop) {
			t.Errorf("Walk(%q): got error %v, want the callback error", base, err)
		}
	})

	t.Run("MissingRoot", func(t *testing.T) {
		missing := join(root, "no-such-dir")
		err := filesystem.Walk(missing, func(_ string, _ os.FileInfo, err error) error { return err })
		if !errors.Is(err, iofs.ErrNotExist) {
			t.Errorf("Walk(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
	})
}
