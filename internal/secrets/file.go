package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore implements the Store interface with a single key file on local disk.
// The file holds the serialized key verbatim, with no framing.
// Access is serialized across processes with an advisory lock next to the file.
type FileStore struct {
	path     string
	lockPath string
}

// NewFileStore creates a file-backed key store for dir/name.
// Nothing is touched on disk until Save or Delete.
func NewFileStore(dir, name string) *FileStore {
	path := filepath.Join(dir, name)
	return &FileStore{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Location returns the key file path.
func (s *FileStore) Location() string {
	return s.path
}

// Load reads the key file. It never writes to the key directory.
// Returns ErrNotFound if it is missing and ErrEmpty if it has zero length.
func (s *FileStore) Load() ([]byte, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &ReadError{Location: s.path, Err: err}
	}
	if info.Size() == 0 {
		return nil, ErrEmpty
	}

	unlock, err := acquireShared(s.lockPath)
	if err != nil {
		return nil, &ReadError{Location: s.path, Err: err}
	}
	defer unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, &ReadError{Location: s.path, Err: err}
	}
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	return data, nil
}

// Save writes data as the key file, replacing any previous content.
// The parent directory is created with 0700 permissions if needed.
func (s *FileStore) Save(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create key directory: %w", err)
	}

	unlock, err := acquire(s.lockPath, false)
	if err != nil {
		return err
	}
	defer unlock()

	return writeFileAtomic(s.path, data)
}

// Delete removes the key file and recreates it empty at the same path.
// Returns ErrNotFound if there was no file to delete.
func (s *FileStore) Delete() error {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat key file: %w", err)
	}

	unlock, err := acquire(s.lockPath, false)
	if err != nil {
		return err
	}
	defer unlock()

	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to remove key file: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to recreate key file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to recreate key file: %w", err)
	}

	return nil
}

// writeFileAtomic writes to a temp file in the target directory, syncs it,
// and renames it over path so readers never observe a partial key.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp key file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return cleanup(fmt.Errorf("failed to write key file: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(fmt.Errorf("failed to sync key file: %w", err))
	}
	if err := tmp.Chmod(0600); err != nil {
		return cleanup(fmt.Errorf("failed to set key file permissions: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to write key file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace key file: %w", err)
	}

	return nil
}
