package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/modelgraph/pkg/errors"
	mgio "github.com/matzehuels/modelgraph/pkg/io"
	"github.com/matzehuels/modelgraph/pkg/model"
)

const snapshotExt = ".json"

// FileStore keeps one document file per environment in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultDir returns the directory used when none is configured:
// $XDG_CONFIG_HOME/modelgraph/snapshots (or the platform equivalent).
func DefaultDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, "modelgraph", "snapshots"), nil
}

// NewFileStore creates a store in baseDir, or in [DefaultDir] when baseDir
// is empty. The directory is created if needed.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		baseDir = d
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the directory holding the snapshots.
func (s *FileStore) Path() string { return s.baseDir }

// SnapshotPath returns the file of env's snapshot.
func (s *FileStore) SnapshotPath(env string) (string, error) {
	if err := errors.ValidateEnvironmentID(env); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, env+snapshotExt), nil
}

func (s *FileStore) Save(ctx context.Context, env string, doc model.Document) error {
	path, err := s.SnapshotPath(env)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := mgio.WriteDocument(doc, &buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, env string) (model.Document, error) {
	path, err := s.SnapshotPath(env)
	if err != nil {
		return model.Document{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return model.Document{}, notFound(env)
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("read snapshot: %w", err)
	}
	return mgio.DecodeDocument(data)
}

func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read snapshot dir: %w", err)
	}

	var out []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != snapshotExt {
			continue
		}
		fi, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Info{
			EnvironmentID: strings.TrimSuffix(name, snapshotExt),
			SavedAt:       fi.ModTime().UTC(),
			Size:          fi.Size(),
		})
	}
	slices.SortFunc(out, func(a, b Info) int { return strings.Compare(a.EnvironmentID, b.EnvironmentID) })
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, env string) error {
	path, err := s.SnapshotPath(env)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
