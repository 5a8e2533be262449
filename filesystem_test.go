package edunet

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocalFileSystem_Golden(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "data")
	fs := NewLocalFileSystem(dir)

	got, err := fs.DataDirectory()
	if err != nil {
		t.Fatalf("data directory: %v", err)
	}
	if got != dir {
		t.Fatalf("dir=%q want %q", got, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("data directory not created: %v", err)
	}

	path := filepath.Join(dir, "a.pdf")
	exists, err := fs.Exists(path)
	if err != nil || exists {
		t.Fatalf("exists=%v err=%v want false,nil", exists, err)
	}

	w, err := fs.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	exists, err = fs.Exists(path)
	if err != nil || !exists {
		t.Fatalf("exists=%v err=%v want true,nil", exists, err)
	}

	if err := fs.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := fs.Remove(path); err != nil {
		t.Fatalf("removing a missing file should succeed: %v", err)
	}
}

func TestLocalFileSystem_directoryIsNotAFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fs := NewLocalFileSystem(dir)
	if _, err := fs.Exists(dir); err == nil {
		t.Fatalf("expected error probing a directory")
	}
}
