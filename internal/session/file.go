package session

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileBackend stores each key as <dir>/<key>.json on an afero filesystem.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend creates a FileBackend rooted at dir.
func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, dir: dir}
}

// NewFileStore is shorthand for a Store persisted under dir on the real disk.
func NewFileStore(dir string) *Store {
	return New(NewFileBackend(afero.NewOsFs(), dir))
}

// Path returns the file backing key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Get(key string) ([]byte, bool, error) {
	raw, err := afero.ReadFile(b.fs, b.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (b *FileBackend) Set(key string, value []byte) error {
	if err := b.fs.MkdirAll(b.dir, 0o700); err != nil {
		return err
	}
	return afero.WriteFile(b.fs, b.Path(key), value, 0o600)
}

func (b *FileBackend) Remove(key string) error {
	err := b.fs.Remove(b.Path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
