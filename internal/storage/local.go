// Package storage provides the two side-effecting capabilities of the
// pipeline: local file persistence and object-store publication. Both are
// small interfaces so the orchestrator can be tested with in-memory fakes.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/brand-content-generator/internal/naming"
	"github.com/jonathan/brand-content-generator/internal/types"
)

// ErrNotFound is returned when a requested artifact does not exist locally.
var ErrNotFound = errors.New("file not found")

// PersistError reports a filesystem failure while saving an artifact.
type PersistError struct {
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist artifact: %v", e.Cause)
}

func (e *PersistError) Unwrap() error { return e.Cause }

// Persister writes generated HTML to durable local storage.
type Persister interface {
	// Persist writes the content under <artifactID>.html and returns the
	// stored file's metadata.
	Persist(artifactID, html string) (*types.StoredFile, error)
	// Open streams back a previously persisted file by filename.
	// Returns ErrNotFound if the file does not exist.
	Open(filename string) (io.ReadCloser, error)
}

// DirStore persists artifacts into a single flat directory, created on
// first use. Writes are last-write-wins; artifact ids are effectively unique
// per company and second, so no locking is needed.
type DirStore struct {
	dir string
}

// NewDirStore creates a DirStore rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

// Dir returns the output directory.
func (s *DirStore) Dir() string { return s.dir }

// Persist writes the content under <artifactID>.html inside the output
// directory.
func (s *DirStore) Persist(artifactID, html string) (*types.StoredFile, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, &PersistError{Cause: err}
	}

	filename := artifactID + ".html"
	path := filepath.Join(s.dir, filename)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return nil, &PersistError{Cause: err}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &types.StoredFile{
		Filename: filename,
		Filepath: abs,
		Size:     int64(len(html)),
	}, nil
}

// Open streams back a stored file. The filename is re-validated against the
// naming grammar even though derived ids cannot contain separators, so a
// hostile download request can never escape the output directory.
func (s *DirStore) Open(filename string) (io.ReadCloser, error) {
	if !naming.ValidFilename(filename) {
		return nil, fmt.Errorf("%w: invalid filename %q", ErrNotFound, filename)
	}

	f, err := os.Open(filepath.Join(s.dir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	return f, nil
}
