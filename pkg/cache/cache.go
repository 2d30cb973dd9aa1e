package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"albumdl/pkg/logger"
)

// DefaultTTL is the age after which an entry is treated as absent
const DefaultTTL = 7 * 24 * time.Hour

// Store is a persistent, namespaced key-value cache backed by a directory
// of JSON files. Entries older than the TTL are treated as absent. Values
// survive process restarts.
type Store struct {
	dir    string
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time
}

// entry is the on-disk representation of a cached value
type entry struct {
	Key      string          `json:"key"`
	CachedAt time.Time       `json:"cached_at"`
	Value    json.RawMessage `json:"value"`
}

// New creates a store rooted at dir/namespace, creating the directory if needed
func New(dir, namespace string, ttl time.Duration, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	storeDir := filepath.Join(dir, namespace)
	if err := os.MkdirAll(storeDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	return &Store{
		dir:    storeDir,
		ttl:    ttl,
		logger: log,
		now:    time.Now,
	}, nil
}

// Get looks up a key and decodes its value into target. It returns false
// when the key was never written or its entry has outlived the TTL.
// Storage and decode errors propagate to the caller.
func (s *Store) Get(key string, target interface{}) (bool, error) {
	file, err := os.Open(s.entryPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open cache entry %q: %w", key, err)
	}
	defer file.Close()

	var e entry
	if err := json.NewDecoder(file).Decode(&e); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %q: %w", key, err)
	}

	if s.now().Sub(e.CachedAt) > s.ttl {
		s.logger.DebugWithFields("cache entry expired", map[string]interface{}{
			"key":       key,
			"cached_at": e.CachedAt,
			"ttl":       s.ttl,
		})
		// Expired entries are removed on read; TTL expiry is the only eviction
		_ = os.Remove(s.entryPath(key))
		return false, nil
	}

	if err := json.Unmarshal(e.Value, target); err != nil {
		return false, fmt.Errorf("failed to decode cached value %q: %w", key, err)
	}

	return true, nil
}

// Set stores a value under a key, stamping it with the current time.
// The entry file is replaced atomically.
func (s *Store) Set(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %q: %w", key, err)
	}

	e := entry{
		Key:      key,
		CachedAt: s.now(),
		Value:    raw,
	}

	path := s.entryPath(key)
	tempPath := path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create cache entry file: %w", err)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(&e); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	// Ensure data is written to disk
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to sync cache entry: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close cache entry: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to replace cache entry: %w", err)
	}

	s.logger.DebugWithFields("cache entry written", map[string]interface{}{
		"key": key,
	})

	return nil
}

// Dir returns the directory holding this store's entries
func (s *Store) Dir() string {
	return s.dir
}

// entryPath maps a key to its file path
func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}

// sanitizeKey turns a cache key into a safe file name
func sanitizeKey(key string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		" ", "_",
		"..", "_",
	)
	return replacer.Replace(key)
}
