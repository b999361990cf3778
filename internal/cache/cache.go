// Package cache memoizes tokenize+unroll results across the many repeated
// patterns a large filetype-detection script tends to reuse, keyed by a
// BLAKE2b digest of the pattern text rather than the text itself, so the
// map doesn't pin arbitrarily large pattern strings as keys.
package cache

import (
	"sync"

	"golang.org/x/crypto/blake2b"

	"github.com/kodeshi/auparse/internal/token"
	"github.com/kodeshi/auparse/internal/unroll"
)

// Result is the memoized outcome of tokenizing and unrolling one pattern.
type Result struct {
	Stream     *token.Stream
	Expansions []unroll.Expansion
	Err        error
}

// key is a BLAKE2b-256 digest of a pattern string.
type key [32]byte

// Cache is a concurrency-safe memoization table. The zero value is ready to
// use.
type Cache struct {
	mu      sync.RWMutex
	entries map[key]Result
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[key]Result)}
}

func digest(pattern string) key {
	return blake2b.Sum256([]byte(pattern))
}

// Get returns the memoized result for pattern, if present.
func (c *Cache) Get(pattern string) (Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.entries[digest(pattern)]
	return r, ok
}

// Put stores the result of tokenizing and unrolling pattern.
func (c *Cache) Put(pattern string, r Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[key]Result)
	}
	c.entries[digest(pattern)] = r
}

// Resolve returns the memoized result for pattern, computing and storing it
// via fn on a miss. fn is called at most once per distinct pattern.
func (c *Cache) Resolve(pattern string, fn func(pattern string) (*token.Stream, []unroll.Expansion, error)) Result {
	if r, ok := c.Get(pattern); ok {
		return r
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := digest(pattern)
	if r, ok := c.entries[k]; ok {
		return r
	}
	stream, expansions, err := fn(pattern)
	r := Result{Stream: stream, Expansions: expansions, Err: err}
	if c.entries == nil {
		c.entries = make(map[key]Result)
	}
	c.entries[k] = r
	return r
}

// Len reports the number of distinct patterns currently memoized.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
