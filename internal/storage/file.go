package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend keeps one JSON document per key in a directory. Writes land in
// a temp file that is renamed over the target, so a failed write leaves the
// previous document intact.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend creates dir on fs if needed
func NewFileBackend(fsys afero.Fs, dir string) (*FileBackend, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileBackend{fs: fsys, dir: dir}, nil
}

// NewFile opens a file-backed Store in dir on the OS filesystem
func NewFile(dir string) (*Store, error) {
	b, err := NewFileBackend(afero.NewOsFs(), dir)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}

func (b *FileBackend) path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

// Get reads the file for key, ErrMissing when it does not exist
func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(b.fs, b.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrMissing
	}
	return data, err
}

// Put writes data to a temp file and renames it over the file for key
func (b *FileBackend) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := afero.TempFile(b.fs, b.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	name := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(name)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = b.fs.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = b.fs.Remove(name)
		return err
	}
	if err := b.fs.Rename(name, b.path(key)); err != nil {
		_ = b.fs.Remove(name)
		return err
	}
	return nil
}
