package catalog

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fileCache stores JSON blobs on disk keyed by a sha1 of the logical key.
// Entries expire by file modification time.
type fileCache struct {
	dir string
	ttl time.Duration
}

func newFileCache(dir string, ttlHours int) *fileCache {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &fileCache{dir: dir, ttl: time.Duration(ttlHours) * time.Hour}
}

func cacheKey(parts ...string) string {
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

func (c *fileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

// get reports whether a fresh entry exists for key and, if so, decodes it
// into v.
func (c *fileCache) get(key string, v any) (bool, error) {
	info, err := os.Stat(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if time.Since(info.ModTime()) > c.ttl {
		return false, nil
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		// Stale or truncated entry; treat as a miss.
		return false, nil
	}
	return true, nil
}

func (c *fileCache) set(key string, v any) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	tmp := c.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, c.path(key))
}

func (c *fileCache) clear() error {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		_ = os.Remove(filepath.Join(c.dir, entry.Name()))
	}
	return nil
}
