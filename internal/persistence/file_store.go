package persistence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one JSON file per record list under Dir.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

func (s *FileStore) path(kind string) string {
	return filepath.Join(s.Dir, kind+".json")
}

// Save writes every list through a temp file and rename so a crash never
// leaves a half written list behind.
func (s *FileStore) Save(_ context.Context, snap *Snapshot) error {
	parts, err := snap.Encode()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", s.Dir, err)
	}
	for _, kind := range Kinds {
		tmp, err := os.CreateTemp(s.Dir, kind+".*.tmp")
		if err != nil {
			return fmt.Errorf("save %s: %w", kind, err)
		}
		_, werr := tmp.Write(parts[kind])
		cerr := tmp.Close()
		if werr != nil || cerr != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("save %s: %w", kind, errors.Join(werr, cerr))
		}
		if err := os.Rename(tmp.Name(), s.path(kind)); err != nil {
			_ = os.Remove(tmp.Name())
			return fmt.Errorf("save %s: %w", kind, err)
		}
	}
	return nil
}

// Load reads the lists back. A missing directory, or one holding none of
// the files, is ErrNoSnapshot.
func (s *FileStore) Load(_ context.Context) (*Snapshot, error) {
	parts := make(map[string][]byte, len(Kinds))
	for _, kind := range Kinds {
		b, err := os.ReadFile(s.path(kind))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", kind, err)
		}
		parts[kind] = b
	}
	if len(parts) == 0 {
		return nil, ErrNoSnapshot
	}
	return Decode(parts)
}
