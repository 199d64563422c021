package health

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/vigil/internal/core/domain"
	"go.trai.ch/zerr"
)

// SnapshotStore persists every source record as one JSON document keyed by name.
type SnapshotStore struct {
	path string
}

// NewSnapshotStore creates a SnapshotStore backed by the file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: filepath.Clean(path)}
}

// Path returns the snapshot file location.
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the snapshot. A missing or empty file yields an empty map.
func (s *SnapshotStore) Load() (map[string]domain.SourceHealth, error) {
	records := make(map[string]domain.SourceHealth)

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return records, nil
		}
		return records, zerr.With(zerr.Wrap(err, domain.ErrSnapshotReadFailed.Error()), "path", s.path)
	}

	if len(data) == 0 {
		return records, nil
	}

	if err := json.Unmarshal(data, &records); err != nil {
		return make(map[string]domain.SourceHealth), zerr.With(zerr.Wrap(err, domain.ErrSnapshotUnmarshalFailed.Error()), "path", s.path)
	}

	// The map key is authoritative for the name.
	for name, h := range records {
		h.Name = name
		records[name] = h
	}

	return records, nil
}

// Write replaces the snapshot atomically with records.
func (s *SnapshotStore) Write(records map[string]domain.SourceHealth) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrSnapshotMarshalFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", s.path)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", s.path)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpName, domain.FilePerm)
	}
	if err == nil {
		err = os.Rename(tmpName, s.path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return zerr.With(zerr.Wrap(err, domain.ErrSnapshotWriteFailed.Error()), "path", s.path)
	}

	return nil
}
