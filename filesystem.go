package edunet

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const appDirName = "edunet"

// LocalFileSystem stores downloads flat under one directory on disk
type LocalFileSystem struct {
	dir string
}

// NewLocalFileSystem uses dir, or the user cache directory when dir is empty
func NewLocalFileSystem(dir string) *LocalFileSystem {
	return &LocalFileSystem{dir: dir}
}

func (l *LocalFileSystem) DataDirectory() (string, error) {
	dir := l.dir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("resolve data directory: %w", err)
		}
		dir = filepath.Join(base, appDirName)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("could not create data directory %q: %w", dir, err)
	}
	return dir, nil
}

func (l *LocalFileSystem) Exists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%q is a directory", path)
	}
	return true, nil
}

func (l *LocalFileSystem) Create(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create destination folder %q: %w", path, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("could not create output file %q: %w", path, err)
	}
	return out, nil
}

// Remove deletes path. A missing file is not an error.
func (l *LocalFileSystem) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
