package fstest

import (
	"bytes"
	"errors"
	"io"
	iofs "io/fs"
	"testing"
)

// TestRead checks Open, Stat, ReadFile and ReadDir on a small tree.
func TestRead(t *testing.T, filesystem Filesystem, root string) {
	content := []byte("%PDF-1.4 handbook")
	dir := join(root, "docs")
	file := join(root, "docs", "handbook.pdf")

	if err := filesystem.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll(%q): setup failed: %v", dir, err)
	}
	if err := filesystem.WriteFile(file, content, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", file, err)
	}

	t.Run("Open", func(t *testing.T) {
		f, err := filesystem.Open(file)
		if err != nil {
			t.Fatalf("Open(%q): got error %v, want nil", file, err)
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				t.Errorf("Close(): got error %v", closeErr)
			}
		}()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll(): got error %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadAll(): got %q, want %q", data, content)
		}

		info, err := f.Stat()
		if err != nil {
			t.Fatalf("File.Stat(): got error %v", err)
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("File.Stat(): Size() = %d, want %d", info.Size(), len(content))
		}
	})

	t.Run("StatFile", func(t *testing.T) {
		info, err := filesystem.Stat(file)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", file, err)
		}
		if info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = true, want false", file)
		}
		if info.Name() != "handbook.pdf" {
			t.Errorf("Stat(%q): Name() = %q, want %q", file, info.Name(), "handbook.pdf")
		}
	})

	t.Run("StatDir", func(t *testing.T) {
		info, err := filesystem.Stat(dir)
		if err != nil {
			t.Fatalf("Stat(%q): got error %v, want nil", dir, err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(%q): IsDir() = false, want true", dir)
		}
	})

	t.Run("ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile(file)
		if err != nil {
			t.Fatalf("ReadFile(%q): got error %v, want nil", file, err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadFile(%q): got %q, want %q", file, data, content)
		}
	})

	t.Run("ReadDir", func(t *testing.T) {
		entries, err := filesystem.ReadDir(dir)
		if err != nil {
			t.Fatalf("ReadDir(%q): got error %v, want nil", dir, err)
		}
		if len(entries) != 1 || entries[0].Name() != "handbook.pdf" {
			t.Errorf("ReadDir(%q): got %d entries, want [handbook.pdf]", dir, len(entries))
		}
	})

	t.Run("NotExist", func(t *testing.T) {
		missing := join(root, "docs", "missing.txt")
		if _, err := filesystem.Open(missing); !errors.Is(err, iofs.ErrNotExist) {
			t.Errorf("Open(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
		if _, err := filesystem.Stat(missing); !errors.Is(err, iofs.ErrNotExist) {
			t.Errorf("Stat(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
		if _, err := filesystem.ReadFile(missing); !errors.Is(err, iofs.ErrNotExist) {
			t.Errorf("ReadFile(%q): got error %v, want fs.ErrNotExist", missing, err)
		}
	})
}
