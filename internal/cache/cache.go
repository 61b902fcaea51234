package cache

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Entry is a cached value and the time it was fetched.
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
}

// Valid reports whether the entry is younger than ttl at now.
func (e Entry[V]) Valid(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.FetchedAt) < ttl
}

// Cache maps keys to entries. The zero value is not usable; use New.
type Cache[V any] struct {
	clock Clock

	mu      sync.Mutex
	entries map[string]Entry[V]
	locks   map[string]*keyLock
}

// keyLock serializes fetches for one key. refs counts holders and waiters;
// the lock is dropped from the map when it reaches zero.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a Cache. A nil clock uses the system clock.
func New[V any](clock Clock) *Cache[V] {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Cache[V]{
		clock:   clock,
		entries: make(map[string]Entry[V]),
		locks:   make(map[string]*keyLock),
	}
}

// Lookup returns the entry for key if it is still valid.
func (c *Cache[V]) Lookup(key string, ttl time.Duration) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok || !e.Valid(c.clock.Now(), ttl) {
		var zero V
		return zero, false
	}
	return e.Value, true
}

// Store records value for key, stamped with the current time.
func (c *Cache[V]) Store(key string, value V) {
	c.mu.Lock()
	c.entries[key] = Entry[V]{Value: value, FetchedAt: c.clock.Now()}
	c.mu.Unlock()
}

// Entry returns the raw entry for key regardless of age.
func (c *Cache[V]) Entry(key string) (Entry[V], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return e, ok
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrFetch returns the valid entry for key, or calls fetch and stores its
// result. hit reports whether the value came from the cache. On fetch error
// the existing entry is left untouched.
func (c *Cache[V]) GetOrFetch(key string, ttl time.Duration, fetch func() (V, error)) (value V, hit bool, err error) {
	lock := c.acquire(key)
	defer c.release(key, lock)

	if v, ok := c.Lookup(key, ttl); ok {
		return v, true, nil
	}

	v, err := fetch()
	if err != nil {
		var zero V
		return zero, false, err
	}
	c.Store(key, v)
	return v, false, nil
}

func (c *Cache[V]) acquire(key string) *keyLock {
	c.mu.Lock()
	l, ok := c.locks[key]
	if !ok {
		l = &keyLock{}
		c.locks[key] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return l
}

func (c *Cache[V]) release(key string, l *keyLock) {
	l.mu.Unlock()

	c.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(c.locks, key)
	}
	c.mu.Unlock()
}

// Key builds a cache key from an operation name and a parameter set. The
// parameters are lowercased, deduplicated and sorted, so {"ETH","btc"} and
// {"btc","eth"} share a key.
func Key(op string, params ...string) string {
	set := make(map[string]struct{}, len(params))
	for _, p := range params {
		set[strings.ToLower(strings.TrimSpace(p))] = struct{}{}
	}
	norm := make([]string, 0, len(set))
	for p := range set {
		norm = append(norm, p)
	}
	sort.Strings(norm)
	return op + ":" + strings.Join(norm, ",")
}
