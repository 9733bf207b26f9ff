package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

// Store is the persistence collaborator for session state. Values are
// JSON-encoded per key. Writes are synchronous: a successful Set or
// Delete is durable before it returns.
type Store interface {
	// Get decodes the value under key into v; found is false when the
	// key is absent.
	Get(key string, v interface{}) (found bool, err error)
	// Set encodes v and stores it under key.
	Set(key string, v interface{}) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
}

// FileStore keeps all keys in one JSON document on disk with an
// in-memory mirror for reads.
type FileStore struct {
	mu    sync.Mutex
	path  string
	cache *gocache.Cache
}

// NewFileStore opens (or creates) the state file at path
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:  path,
		cache: gocache.New(gocache.NoExpiration, 0),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	entries := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt state file means no restorable session, not a fatal error
		return s, nil
	}
	for key, raw := range entries {
		s.cache.Set(key, raw, gocache.NoExpiration)
	}

	return s, nil
}

// Get decodes the value under key into v
func (s *FileStore) Get(key string, v interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, found := s.cache.Get(key)
	if !found {
		return false, nil
	}

	raw, ok := item.(json.RawMessage)
	if !ok {
		return false, fmt.Errorf("unexpected value type under key %q", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode value under key %q: %w", key, err)
	}
	return true, nil
}

// Set encodes v and writes the state file synchronously
func (s *FileStore) Set(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode value under key %q: %w", key, err)
	}

	s.cache.Set(key, json.RawMessage(raw), gocache.NoExpiration)
	return s.flush()
}

// Delete removes key and rewrites the state file
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Delete(key)
	return s.flush()
}

// flush rewrites the full document. Caller holds the lock.
func (s *FileStore) flush() error {
	entries := map[string]json.RawMessage{}
	for key, item := range s.cache.Items() {
		if raw, ok := item.Object.(json.RawMessage); ok {
			entries[key] = raw
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
