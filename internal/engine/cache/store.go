// Package cache keeps computed impact reports on disk for a limited time so
// repeated summaries over unchanged input skip re-aggregation.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	fileExtension = ".json"
	dirPermission = 0o750
	filePerm      = 0o600
)

var (
	// ErrCacheNotFound is returned when no entry exists for a key.
	ErrCacheNotFound = errors.New("cache entry not found")

	// ErrCacheExpired is returned for an entry past its TTL. The entry is
	// removed.
	ErrCacheExpired = errors.New("cache entry expired")

	// ErrCacheDisabled is returned by every operation on a disabled store.
	ErrCacheDisabled = errors.New("cache is disabled")

	// ErrInvalidKey is returned for an empty key.
	ErrInvalidKey = errors.New("cache key cannot be empty")
)

// KeyFor derives a stable key from parts. Parts are joined with a NUL byte
// so ("ab", "c") and ("a", "bc") hash differently.
func KeyFor(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}

// FileStore stores one JSON file per key in a directory.
type FileStore struct {
	dir     string
	ttl     time.Duration
	enabled bool
	mu      sync.RWMutex
}

// Disabled returns a store that caches nothing.
func Disabled() *FileStore {
	return &FileStore{}
}

// NewFileStore opens (creating if needed) a store in dir whose entries live
// for ttl.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("cache directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPermission); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &FileStore{dir: dir, ttl: ttl, enabled: true}, nil
}

// Enabled reports whether the store caches anything.
func (s *FileStore) Enabled() bool {
	return s != nil && s.enabled
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get returns the live entry for key.
func (s *FileStore) Get(key string) (*CacheEntry, error) {
	if !s.Enabled() {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidKey
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.path(key))
	s.mu.RUnlock()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheNotFound
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	var entry CacheEntry
	if err = json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decoding cache entry: %w", err)
	}

	if entry.IsExpired() {
		_ = s.Delete(key)
		return nil, ErrCacheExpired
	}
	return &entry, nil
}

// Set writes data under key, replacing any existing entry. The file is
// written to a temp name and renamed so readers never see a partial entry.
func (s *FileStore) Set(key string, data json.RawMessage) error {
	if !s.Enabled() {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	encoded, err := json.Marshal(NewCacheEntry(key, data, s.ttl))
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	tmp := path + ".tmp"
	if err = os.WriteFile(tmp, encoded, filePerm); err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("committing cache entry: %w", err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *FileStore) Delete(key string) error {
	if !s.Enabled() {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting cache entry: %w", err)
	}
	return nil
}

// CleanupExpired removes every expired or unreadable entry and returns how
// many files were removed.
func (s *FileStore) CleanupExpired() (int, error) {
	if !s.Enabled() {
		return 0, ErrCacheDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	files, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("reading cache directory: %w", err)
	}

	removed := 0
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != fileExtension {
			continue
		}
		path := filepath.Join(s.dir, f.Name())

		var entry CacheEntry
		data, readErr := os.ReadFile(path)
		if readErr == nil {
			readErr = json.Unmarshal(data, &entry)
		}
		if readErr != nil || entry.IsExpired() {
			if os.Remove(path) == nil {
				removed++
			}
		}
	}
	return removed, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+fileExtension)
}

// GetJSON decodes the live entry for key into a value of type T.
func GetJSON[T any](s *FileStore, key string) (T, error) {
	var v T
	entry, err := s.Get(key)
	if err != nil {
		return v, err
	}
	if err = json.Unmarshal(entry.Data, &v); err != nil {
		return v, fmt.Errorf("decoding cached value: %w", err)
	}
	return v, nil
}

// SetJSON encodes v and stores it under key.
func SetJSON[T any](s *FileStore, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding value for cache: %w", err)
	}
	return s.Set(key, data)
}
