// Package settings keeps small player records, such as best scores, in a
// TOML file.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store is a flat key-value store of integers. Every write is flushed to the
// file. A Store with an empty path lives in memory only.
type Store struct {
	path   string
	mu     sync.Mutex
	values map[string]int64
}

// Open reads the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: map[string]int64{}}
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("settings: read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("settings: parse %s: %w", path, err)
	}
	return s, nil
}

func Memory() *Store {
	s, _ := Open("")
	return s
}

func (s *Store) Int(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return int(v), ok
}

func (s *Store) SetInt(key string, v int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = int64(v)
	return s.flush()
}

func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flush writes the whole store through a temporary file. Callers hold mu.
func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("settings: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(s.values); err != nil {
		_ = f.Close()
		return fmt.Errorf("settings: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	return os.Rename(tmp, s.path)
}
