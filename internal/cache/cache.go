// Package cache keeps tokenized templates on disk so that batch runs over
// unchanged templates skip scanning.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"bracefmt/internal/lexer"
	"bracefmt/internal/token"
)

// Current schema version - increment when the payload format changes
const schemaVersion uint16 = 1

// Key is the SHA-256 of a template's text.
type Key [32]byte

func KeyOf(text string) Key {
	return sha256.Sum256([]byte(text))
}

func (k Key) String() string { return hex.EncodeToString(k[:]) }

// Disk stores token streams keyed by template hash.
// Thread-safe for concurrent access.
type Disk struct {
	mu  sync.RWMutex
	dir string

	hits   atomic.Int64
	misses atomic.Int64
}

// payload is the on-disk form. Spans are stored flat to keep the encoding
// independent of the token package's layout.
type payload struct {
	Schema uint16        `msgpack:"v"`
	Key    Key           `msgpack:"k"`
	Tokens []cachedToken `msgpack:"t"`
}

type cachedToken struct {
	Literal  string       `msgpack:"l"`
	LitStart uint32       `msgpack:"ls"`
	LitEnd   uint32       `msgpack:"le"`
	Field    *cachedField `msgpack:"f,omitempty"`
}

type cachedField struct {
	Name       string `msgpack:"n"`
	Conversion byte   `msgpack:"c"`
	Spec       string `msgpack:"s"`
	// Start/End пары: поле целиком, имя, спецификация
	Spans [6]uint32 `msgpack:"sp"`
}

// Open returns a cache rooted at dir, creating it if needed.
func Open(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Disk{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Disk) Dir() string { return c.dir }

func (c *Disk) pathFor(key Key) string {
	hexKey := key.String()
	// подкаталог по первым двум символам, чтобы не плодить тысячи файлов в одном
	return filepath.Join(c.dir, "tmpl", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes tokens to the cache.
func (c *Disk) Put(key Key, tokens []token.Token) (err error) {
	if c == nil {
		return nil
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
		if err != nil {
			_ = f.Close()           //nolint:errcheck
			_ = os.Remove(f.Name()) //nolint:errcheck
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(toPayload(key, tokens)); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads the tokens stored under key. Entries written with another
// schema version are reported as misses.
func (c *Disk) Get(key Key) ([]token.Token, bool, error) {
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
	defer f.Close() //nolint:errcheck

	var p payload
	if err := msgpack.NewDecoder(f).Decode(&p); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	if p.Schema != schemaVersion || p.Key != key {
		return nil, false, nil
	}
	return fromPayload(&p), true, nil
}

// Tokenize returns the tokens of text, from the cache when possible.
// Templates that fail to tokenize are not cached.
func (c *Disk) Tokenize(text string) ([]token.Token, bool, error) {
	key := KeyOf(text)
	if toks, ok, err := c.Get(key); err == nil && ok {
		c.hits.Add(1)
		return toks, true, nil
	}
	if c != nil {
		c.misses.Add(1)
	}

	toks, err := lexer.All(text)
	if err != nil {
		return nil, false, err
	}
	if err := c.Put(key, toks); err != nil {
		return nil, false, fmt.Errorf("cache write failed: %w", err)
	}
	return toks, false, nil
}

// Stats reports hits and misses of Tokenize.
func (c *Disk) Stats() (hits, misses int64) {
	if c == nil {
		return 0, 0
	}
	return c.hits.Load(), c.misses.Load()
}

// DropAll invalidates the cache.
func (c *Disk) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	root := filepath.Join(c.dir, "tmpl")
	old := root + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(root, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
