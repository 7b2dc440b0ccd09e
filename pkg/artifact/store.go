package artifact

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const extension = ".png"

// Location identifies a stored artifact.
type Location struct {
	ID   string
	Path string
}

// StoreError wraps a filesystem failure with the operation that hit it.
type StoreError struct {
	Op   string
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("artifact.%s (path=%s): %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// FileStore keeps transient rendered images in one directory. Whoever
// receives a Location owns deleting it.
type FileStore struct {
	dir   string
	newID func() string
}

type Option func(*FileStore)

// WithIDGenerator replaces uuid-based names. Useful for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *FileStore) { s.newID = gen }
}

func NewFileStore(dir string, opts ...Option) *FileStore {
	s := &FileStore{
		dir:   dir,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) Dir() string {
	return s.dir
}

// SavePNG encodes img under a fresh unique name.
func (s *FileStore) SavePNG(img image.Image) (Location, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Location{}, &StoreError{Op: "mkdir", Path: s.dir, Err: err}
	}

	id := s.newID()
	path := filepath.Join(s.dir, id+extension)

	// Write to a temp name first so readers never see a half-written PNG.
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return Location{}, &StoreError{Op: "create", Path: tmp, Err: err}
	}

	w := bufio.NewWriter(f)
	encErr := png.Encode(w, img)
	if encErr == nil {
		encErr = w.Flush()
	}
	closeErr := f.Close()
	if err := errors.Join(encErr, closeErr); err != nil {
		_ = os.Remove(tmp)
		return Location{}, &StoreError{Op: "encode", Path: tmp, Err: err}
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return Location{}, &StoreError{Op: "rename", Path: path, Err: err}
	}

	return Location{ID: id, Path: path}, nil
}

// Remove deletes a stored artifact. Paths outside the store are refused.
func (s *FileStore) Remove(path string) error {
	if !s.owns(path) {
		return &StoreError{Op: "remove", Path: path, Err: errors.New("path is outside the artifact store")}
	}
	if err := os.Remove(path); err != nil {
		return &StoreError{Op: "remove", Path: path, Err: err}
	}
	return nil
}

func (s *FileStore) owns(path string) bool {
	dir, err := filepath.Abs(s.dir)
	if err != nil {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return filepath.Dir(abs) == dir && strings.HasSuffix(abs, extension)
}
