package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/asyncspec/manifest"
)

// manifestInput represents the three ways a manifest can be provided to a
// tool. Exactly one of File, URL, or Content must be set.
type manifestInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a manifest file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a manifest from"`
	Content string `json:"content,omitempty" jsonschema:"Inline manifest content (YAML or JSON)"`
}

// cacheEntry holds a parsed manifest with LRU ordering and TTL expiry.
type cacheEntry struct {
	result    *manifest.Result
	insertAt  time.Time
	expiresAt time.Time
}

// manifestCacheStore provides a session-scoped cache for parsed manifests.
// File inputs are keyed by (absolutePath, modTime). Content inputs are keyed
// by a SHA-256 hash. URL inputs are keyed by URL string.
// Entries have per-type TTLs and a background sweeper removes expired entries.
type manifestCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var manifestCache = &manifestCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached result or nil. Expired entries are lazily removed.
func (c *manifestCacheStore) get(key string) *manifest.Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.result
}

// put stores a result with a TTL, evicting the least recently used entry
// when at capacity.
func (c *manifestCacheStore) put(key string, result *manifest.Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{result: result, insertAt: now, expiresAt: now.Add(ttl)}
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey, oldestTime = k, e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *manifestCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes
// expired entries. Only the first call spawns a sweeper. It stops when ctx
// is cancelled.
func (c *manifestCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *manifestCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *manifestCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key and TTL for the input, or "" when the
// input cannot be cached.
func (m manifestInput) cacheKey() (string, time.Duration) {
	switch {
	case m.File != "":
		absPath, err := filepath.Abs(m.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case m.Content != "":
		h := sha256.Sum256([]byte(m.Content))
		return "content:" + hex.EncodeToString(h[:]), cfg.CacheContentTTL
	case m.URL != "":
		return "url:" + m.URL, cfg.CacheURLTTL
	}
	return "", 0
}

// resolve parses the manifest from whichever input was provided, using the
// cache when enabled.
func (m manifestInput) resolve(ctx context.Context) (*manifest.Result, error) {
	count := 0
	for _, v := range []string{m.File, m.URL, m.Content} {
		if v != "" {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if int64(len(m.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set ASYNCSPEC_MCP_MAX_INLINE_SIZE to increase",
			len(m.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = m.cacheKey()
		if key != "" {
			if cached := manifestCache.get(key); cached != nil {
				return cached, nil
			}
		}
	}

	var (
		result *manifest.Result
		err    error
	)
	switch {
	case m.File != "":
		result, err = manifest.Load(m.File)
	case m.URL != "":
		var data []byte
		data, err = fetchManifest(ctx, m.URL, cfg.AllowPrivateIPs)
		if err == nil {
			result, err = manifest.Parse(data)
		}
	default:
		result, err = manifest.Parse([]byte(m.Content))
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		manifestCache.put(key, result, ttl)
	}
	return result, nil
}
