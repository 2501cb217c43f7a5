package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	m "github.com/mouse-blink/splint/internal/model"
)

// Bump when the cached payload or the tokenizers change shape.
const diagCacheSchemaVersion uint16 = 2

// DiagnosticCache stores per-file diagnostics keyed by file content and rule
// set fingerprint.
type DiagnosticCache interface {
	Get(key string) ([]m.Diagnostic, bool, error)
	Put(key string, diags []m.Diagnostic) error
	// DropAll removes every entry.
	DropAll() error
}

// CacheKey derives the cache key of a file scan.
func CacheKey(rulesFingerprint string, path m.Path, contentHash string) string {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(diagCacheSchemaVersion >> 8), byte(diagCacheSchemaVersion)})
	_, _ = h.Write([]byte(rulesFingerprint))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(path))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(contentHash))

	return hex.EncodeToString(h.Sum(nil))
}

type diskPayload struct {
	Schema      uint16
	Diagnostics []m.Diagnostic
}

// DiskCache is a msgpack-encoded DiagnosticCache on disk. Safe for concurrent
// use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// OpenDiskCache opens the cache under $XDG_CACHE_HOME/app (or ~/.cache/app).
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}

		base = filepath.Join(home, ".cache")
	}

	return NewDiskCache(filepath.Join(base, app))
}

// NewDiskCache opens a cache rooted at dir.
func NewDiskCache(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, err
	}

	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key string) string {
	return filepath.Join(c.dir, "diags", key+".mp")
}

// Put implements DiagnosticCache.
func (c *DiskCache) Put(key string, diags []m.Diagnostic) error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := msgpack.NewEncoder(f).Encode(&diskPayload{Schema: diagCacheSchemaVersion, Diagnostics: diags}); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

// Get implements DiagnosticCache. Entries written by another schema version
// are reported as misses.
func (c *DiskCache) Get(key string) ([]m.Diagnostic, bool, error) {
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

		return nil, false, err
	}

	defer func() {
		_ = f.Close()
	}()

	var payload diskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}

	if payload.Schema != diagCacheSchemaVersion {
		return nil, false, nil
	}

	return payload.Diagnostics, true, nil
}

// DropAll implements DiagnosticCache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return os.RemoveAll(filepath.Join(c.dir, "diags"))
}
