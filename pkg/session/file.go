package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/tilegrid/pkg/errors"
	"github.com/matzehuels/tilegrid/pkg/observability"
)

const fileBackend = "file"

// FileStore keeps one JSON file per snapshot. The CLI uses it so saved
// layouts survive between invocations.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore opens (and creates) dir. An empty dir selects
// ~/.config/tilegrid/sessions.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "locate home directory")
		}
		dir = filepath.Join(home, ".config", "tilegrid", "sessions")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "create session dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the directory holding snapshot files.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) file(id string) (string, error) {
	if err := errors.ValidateSessionID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Snapshot, error) {
	path, err := s.file(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	snap, err := readSnapshot(path)
	s.mu.RUnlock()

	switch {
	case err != nil:
		return nil, err
	case snap == nil:
		observability.Store().OnStoreMiss(ctx, fileBackend)
		return nil, nil
	case snap.IsExpired():
		s.mu.Lock()
		_ = os.Remove(path)
		s.mu.Unlock()
		observability.Store().OnStoreMiss(ctx, fileBackend)
		return nil, nil
	}
	observability.Store().OnStoreHit(ctx, fileBackend)
	return snap, nil
}

func (s *FileStore) Set(ctx context.Context, snap *Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	path, _ := s.file(snap.ID)

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode snapshot %s", snap.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Write then rename so readers never see a partial file.
	tmp, err := os.CreateTemp(s.dir, snap.ID+".*.tmp")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "write snapshot %s", snap.ID)
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if werr == nil {
		werr = cerr
	}
	if werr == nil {
		werr = os.Rename(tmp.Name(), path)
	}
	if werr != nil {
		_ = os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeStoreUnavailable, werr, "write snapshot %s", snap.ID)
	}

	observability.Store().OnStoreSet(ctx, fileBackend, len(data))
	return nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	path, err := s.file(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "delete snapshot %s", id)
	}
	return nil
}

// Cleanup removes expired and unreadable snapshot files.
func (s *FileStore) Cleanup(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreUnavailable, err, "list session dir")
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		snap, err := readSnapshot(path)
		if err != nil || (snap != nil && snap.IsExpired()) {
			_ = os.Remove(path)
		}
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// readSnapshot returns nil, nil when path does not exist.
func readSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "read %s", filepath.Base(path))
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStoreUnavailable, err, "decode %s", filepath.Base(path))
	}
	return &snap, nil
}

var _ Store = (*FileStore)(nil)
