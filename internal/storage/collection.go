// Package storage persists task collections as JSON arrays on local disk.
//
// Each collection lives in its own file and every save replaces the whole
// file. Saves go through a temporary file in the same directory that is
// renamed into place, so readers never observe a partially written file.
// There is no locking: two processes mutating the same file race and the
// last writer wins.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/todo-cli/pkg/models"
)

// ErrMalformedCollection is returned under the strict parse policy when a
// collection file holds something other than a JSON array of tasks.
var ErrMalformedCollection = errors.New("malformed task collection")

// CollectionStore loads and saves one ordered task collection.
type CollectionStore interface {
	// Load returns the tasks in file order. A missing file is created empty.
	Load() ([]models.Task, error)
	// Save overwrites the file with tasks.
	Save(tasks []models.Task) error
	// Path returns the backing file path.
	Path() string
}

// CollectionOption configures a CollectionStore.
type CollectionOption func(*fileCollectionStore)

// WithParsePolicy sets how undecodable files are handled. The default is
// models.ParseLenient.
func WithParsePolicy(p models.ParsePolicy) CollectionOption {
	return func(s *fileCollectionStore) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithLogger sets the logger used for malformed-file warnings and debug
// tracing.
func WithLogger(l *log.Logger) CollectionOption {
	return func(s *fileCollectionStore) {
		if l != nil {
			s.logger = l
		}
	}
}

type fileCollectionStore struct {
	path   string
	policy models.ParsePolicy
	logger *log.Logger
}

// NewCollectionStore creates a CollectionStore backed by the JSON file at path.
func NewCollectionStore(path string, opts ...CollectionOption) CollectionStore {
	s := &fileCollectionStore{
		path:   path,
		policy: models.ParseLenient,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *fileCollectionStore) Path() string {
	return s.path
}

func (s *fileCollectionStore) Load() ([]models.Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := s.bootstrap(); err != nil {
				return nil, err
			}
			s.logger.Debug("created empty task file", "path", s.path)
			return []models.Task{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []models.Task{}, nil
	}

	tasks, err := decodeCollection(data)
	if err != nil {
		if s.policy == models.ParseStrict {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedCollection, s.path, err)
		}
		s.logger.Warn("task file is malformed, treating it as empty", "path", s.path, "err", err)
		return []models.Task{}, nil
	}

	s.logger.Debug("loaded tasks", "path", s.path, "count", len(tasks))
	return tasks, nil
}

// bootstrap creates the parent directory and an empty file at s.path.
// An existing file is left untouched.
func (s *fileCollectionStore) bootstrap() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", s.path, err)
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("creating %s: %w", s.path, err)
	}
	return nil
}

func (s *fileCollectionStore) Save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding tasks for %s: %w", s.path, err)
	}
	data = append(data, '\n')

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.logger.Debug("saved tasks", "path", s.path, "count", len(tasks))
	return nil
}

// writeFileAtomic writes data to a temporary sibling of path and renames it
// over path. The temporary file is removed if any step fails.
func writeFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		_ = os.Remove(tmpName)
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpName, err)
	}
	closed = true
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
