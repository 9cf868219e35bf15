package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"docblock/internal/docblock"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest identifies a (document bytes, options) pair.
type Digest [sha256.Size]byte

// RenderCache хранит отрендеренные блоки по хешу входа на диске.
// Thread-safe for concurrent access.
type RenderCache struct {
	mu  sync.RWMutex
	dir string
}

// CachePayload stores one rendered comment block.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	// Rendered comment text
	Output string

	// Size of the source document, a cheap consistency check on Get
	InputSize uint32
}

// OpenRenderCache initializes and returns a render cache at the standard
// location.
func OpenRenderCache(app string) (*RenderCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &RenderCache{dir: dir}, nil
}

// CacheKey hashes the document bytes together with the layout options, so a
// config change invalidates every entry it affects.
func CacheKey(content []byte, opt docblock.Options) Digest {
	h := sha256.New()
	h.Write(content)
	cfg := [4]uint64{
		uint64(cacheSchemaVersion),
		uint64(opt.IndentWidth)<<1 | boolBit(opt.UseTabs),
		uint64(opt.MaxLineLength),
		uint64(opt.MinLastColumnWidth),
	}
	var buf [8]byte
	for _, v := range cfg {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

func (c *RenderCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "render" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "render", hexKey+".mp")
}

// Put serializes and writes a rendered result to the disk cache.
func (c *RenderCache) Put(key Digest, output string, inputLen int) error {
	if c == nil {
		return nil
	}
	size, err := safecast.Conv[uint32](inputLen)
	if err != nil {
		return fmt.Errorf("input size overflow: %w", err)
	}
	payload := &CachePayload{
		Schema:    cacheSchemaVersion,
		Output:    output,
		InputSize: size,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Printf("failed to remove temp file: %v", err)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads a cached render. The bool reports a usable hit.
func (c *RenderCache) Get(key Digest, inputLen int) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			panic(closeErr)
		}
	}()
	var payload CachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		return "", false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return "", false, nil
	}
	size, err := safecast.Conv[uint32](inputLen)
	if err != nil || payload.InputSize != size {
		return "", false, nil
	}
	return payload.Output, true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *RenderCache) DropAll() error {
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
		return err
	}
	return os.RemoveAll(old)
}
