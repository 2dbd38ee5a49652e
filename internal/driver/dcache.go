package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/display"
	"symdisplay/internal/project"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores rendered batches keyed by manifest digest and request
// shape. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is one cached batch.
type DiskPayload struct {
	Schema  uint16
	Key     project.Digest
	Results []Result
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Errorf("locate cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt opens a cache rooted at dir.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Errorf("create cache dir: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey digests everything a batch's output depends on: the manifest
// content, the format and the requests.
func CacheKey(manifest project.Digest, f display.Format, reqs []Request) project.Digest {
	parts := []project.Digest{project.HashString(fmt.Sprintf("%+v", f))}
	for _, r := range reqs {
		parts = append(parts, project.HashString(fmt.Sprintf("%s|%t|%d|%d", r.Path, r.Minimal, r.File, r.Offset)))
	}
	return project.Combine(manifest, parts...)
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "renders", key.String()+".mp")
}

// Put serializes and writes results to the disk cache.
func (c *DiskCache) Put(key project.Digest, results []Result) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := DiskPayload{Schema: diskCacheSchemaVersion, Key: key, Results: results}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		_ = f.Close()
		return errors.Errorf("cache put: %w", err)
	}
	if err := f.Close(); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	// Atomic replace.
	if err := os.Rename(f.Name(), p); err != nil {
		return errors.Errorf("cache put: %w", err)
	}
	return nil
}

// Get reads cached results. A payload from another schema version is a miss.
func (c *DiskCache) Get(key project.Digest) ([]Result, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, errors.Errorf("cache get: %w", err)
	}
	defer func() { _ = f.Close() }()

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, errors.Errorf("cache get: %w", err)
	}
	if payload.Schema != diskCacheSchemaVersion || payload.Key != key {
		return nil, false, nil
	}
	return payload.Results, true, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Errorf("cache drop: %w", err)
	}
	if err := os.RemoveAll(old); err != nil {
		return errors.Errorf("cache drop: %w", err)
	}
	return nil
}
