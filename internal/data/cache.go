package data

import (
	"encoding/json"
	"os"
	"sync"
	"time"
)

// artifactEntry is one cached artifact payload.
type artifactEntry struct {
	payload   json.RawMessage
	modTime   time.Time
	expiresAt time.Time
}

// ArtifactCache memoizes parsed pipeline artifacts for the API server.
// Entries are invalidated when the file's mtime changes or the TTL lapses,
// so re-running a pipeline stage is picked up without restarting the server.
type ArtifactCache struct {
	mu    sync.RWMutex
	store map[string]*artifactEntry
	ttl   time.Duration
}

// NewArtifactCache creates a cache with the given TTL. A zero TTL disables
// expiry (mtime checks still apply).
func NewArtifactCache(ttl time.Duration) *ArtifactCache {
	return &ArtifactCache{
		store: map[string]*artifactEntry{},
		ttl:   ttl,
	}
}

// Load returns the artifact at path as raw JSON, reading from disk only when
// the cached copy is stale.
func (c *ArtifactCache) Load(path string) (json.RawMessage, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	entry, ok := c.store[path]
	c.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) {
		if c.ttl == 0 || time.Now().Before(entry.expiresAt) {
			return entry.payload, nil
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		// Refuse to cache (or serve) a half-written artifact.
		return nil, &InvalidArtifactError{Path: path}
	}

	c.mu.Lock()
	c.store[path] = &artifactEntry{
		payload:   json.RawMessage(raw),
		modTime:   info.ModTime(),
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return raw, nil
}

// InvalidArtifactError reports an artifact file that is not valid JSON.
type InvalidArtifactError struct {
	Path string
}

func (e *InvalidArtifactError) Error() string {
	return "artifact is not valid JSON: " + e.Path
}
