package cache

import (
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileCache implements Cache on the filesystem, one JSON file per entry.
type FileCache struct {
	dir string
}

// NewFileCache creates a cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Read implements Cache.
func (fc *FileCache) Read(key string, maxAge time.Duration) (*Entry, bool) {
	data, err := os.ReadFile(fc.path(key))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if maxAge > 0 && time.Since(entry.FetchedAt) > maxAge {
		return &entry, false // expired, usable for ETag revalidation only
	}
	return &entry, true
}

// Write implements Cache.
func (fc *FileCache) Write(key string, entry *Entry) error {
	entry.FetchedAt = time.Now()
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(fc.path(key), data, 0o600)
}

// KeyFor implements Cache: a digest of the path plus sorted parameters.
func (fc *FileCache) KeyFor(path string, params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(path)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%s", k, params[k])
	}
	return fmt.Sprintf("%x", md5.Sum([]byte(b.String())))
}

func (fc *FileCache) path(key string) string {
	return filepath.Join(fc.dir, key+".json")
}
