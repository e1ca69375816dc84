// Package cache provides a bounded LRU cache with per-entry TTL whose entries are
// mirrored to a persistent Store under a key prefix. Several caches may share one
// Store; each only ever touches keys under its own prefix.
package cache

import (
	"container/list"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flight-search/flight-query-planner/internal/infrastructure/timeutil"
)

// Defaults applied to zero Config fields.
const (
	DefaultMaxSize = 100
	DefaultTTL     = 4 * time.Hour

	// KeyPrefix is prepended to the cache name to build the default storage prefix.
	KeyPrefix = "flight-planner:"
)

// Config holds settings for a single cache instance.
type Config struct {
	// Name identifies the instance in logs, metrics and the registry
	Name string

	// MaxSize is the maximum number of entries held in memory
	MaxSize int

	// TTL is the maximum age of an entry before it is treated as absent
	TTL time.Duration

	// Prefix namespaces the instance's keys in the shared Store
	Prefix string
}

// DefaultConfig returns the default configuration for a named cache.
func DefaultConfig(name string) Config {
	return Config{
		Name:    name,
		MaxSize: DefaultMaxSize,
		TTL:     DefaultTTL,
		Prefix:  KeyPrefix + name + ":",
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig(c.Name)
	if c.MaxSize <= 0 {
		c.MaxSize = def.MaxSize
	}
	if c.TTL <= 0 {
		c.TTL = def.TTL
	}
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
	return c
}

// Entry is a cached value with its write time in epoch milliseconds.
type Entry[T any] struct {
	Key       string
	Value     T
	Timestamp int64
}

// record is the persisted form of an Entry.
type record[T any] struct {
	Value     T     `json:"value"`
	Timestamp int64 `json:"timestamp"`
}

// Stats is a point-in-time snapshot of a cache's counters.
type Stats struct {
	Name          string        `json:"name"`
	Prefix        string        `json:"prefix"`
	Size          int           `json:"size"`
	MaxSize       int           `json:"maxSize"`
	TTL           time.Duration `json:"ttl"`
	Hits          uint64        `json:"hits"`
	Misses        uint64        `json:"misses"`
	Evictions     uint64        `json:"evictions"`
	Expirations   uint64        `json:"expirations"`
	PersistErrors uint64        `json:"persistErrors"`
}

// Option configures a Cache.
type Option func(*options)

type options struct {
	clock    timeutil.Clock
	log      zerolog.Logger
	observer Observer
}

// WithClock sets the clock used for entry timestamps and expiry.
func WithClock(c timeutil.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger that receives persistence failures.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.log = l
	}
}

// WithObserver registers an Observer for cache events.
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// Cache is a bounded LRU cache with TTL expiry backed by a Store.
// The in-memory state is authoritative; Store failures are logged and never returned.
// A Cache is safe for concurrent use.
type Cache[T any] struct {
	cfg      Config
	ttlMs    int64
	store    Store
	clock    timeutil.Clock
	log      zerolog.Logger
	observer Observer

	mu    sync.Mutex
	lru   *list.List
	items map[string]*list.Element
	stats Stats
}

// New creates a cache over store, restores the fresh entries persisted under the
// cache's prefix and evicts the expired ones. A nil store keeps the cache in memory only.
func New[T any](store Store, cfg Config, opts ...Option) *Cache[T] {
	o := options{
		clock:    timeutil.NewRealClock(),
		log:      zerolog.Nop(),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if store == nil {
		store = nopStore{}
	}

	cfg = cfg.withDefaults()
	c := &Cache[T]{
		cfg:      cfg,
		ttlMs:    cfg.TTL.Milliseconds(),
		store:    store,
		clock:    o.clock,
		log:      o.log.With().Str("cache", cfg.Name).Logger(),
		observer: o.observer,
		lru:      list.New(),
		items:    make(map[string]*list.Element),
	}

	c.restore()
	c.Cleanup()
	return c
}

// Name returns the cache instance name.
func (c *Cache[T]) Name() string {
	return c.cfg.Name
}

// Get returns the value for key if present and fresh, and marks it most recently used.
// An expired entry is evicted before reporting absence.
func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.miss()
		return zero, false
	}

	entry := el.Value.(*Entry[T])
	if c.expired(entry, timeutil.NowMillis(c.clock)) {
		c.evict(el, EvictExpired)
		c.miss()
		return zero, false
	}

	c.lru.MoveToFront(el)
	c.stats.Hits++
	c.observer.Hit(c.cfg.Name)
	return entry.Value, true
}

// Has reports whether key is present and fresh without changing its recency.
// An expired entry is evicted.
func (c *Cache[T]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return false
	}
	if c.expired(el.Value.(*Entry[T]), timeutil.NowMillis(c.clock)) {
		c.evict(el, EvictExpired)
		return false
	}
	return true
}

// Set inserts or replaces the value for key and marks it most recently used.
// When a new key arrives at capacity the least recently used entry is evicted first.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := &Entry[T]{Key: key, Value: value, Timestamp: timeutil.NowMillis(c.clock)}

	if el, ok := c.items[key]; ok {
		el.Value = entry
		c.lru.MoveToFront(el)
	} else {
		if c.lru.Len() >= c.cfg.MaxSize {
			if back := c.lru.Back(); back != nil {
				c.evict(back, EvictCapacity)
			}
		}
		c.items[key] = c.lru.PushFront(entry)
	}

	c.persist(entry)
}

// Delete removes key from memory and from the Store. Deleting a missing key is a no-op.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.lru.Remove(el)
		delete(c.items, key)
	}
	c.remove(key)
}

// Clear removes every entry of this cache from memory and from the Store.
// Keys outside the cache's prefix are left untouched.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lru.Init()
	c.items = make(map[string]*list.Element)

	keys, err := c.store.Keys()
	if err != nil {
		c.persistFailed("clear", "", err)
		return
	}
	for _, k := range keys {
		if !strings.HasPrefix(k, c.cfg.Prefix) {
			continue
		}
		if err := c.store.Remove(k); err != nil {
			c.persistFailed("clear", k, err)
		}
	}
}

// Cleanup evicts every expired entry and returns how many were removed.
func (c *Cache[T]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := timeutil.NowMillis(c.clock)
	removed := 0
	for el := c.lru.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el.Value.(*Entry[T]), now) {
			c.evict(el, EvictExpired)
			removed++
		}
		el = prev
	}
	return removed
}

// Keys returns the keys of fresh entries, most recently used first.
func (c *Cache[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := timeutil.NowMillis(c.clock)
	keys := make([]string, 0, c.lru.Len())
	for el := c.lru.Front(); el != nil; el = el.Next() {
		entry := el.Value.(*Entry[T])
		if !c.expired(entry, now) {
			keys = append(keys, entry.Key)
		}
	}
	return keys
}

// Size returns the number of entries held in memory.
// Expired entries count until a read or Cleanup discovers them.
func (c *Cache[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns a snapshot of the cache's counters.
func (c *Cache[T]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Name = c.cfg.Name
	s.Prefix = c.cfg.Prefix
	s.Size = c.lru.Len()
	s.MaxSize = c.cfg.MaxSize
	s.TTL = c.cfg.TTL
	return s
}

func (c *Cache[T]) expired(e *Entry[T], now int64) bool {
	return now-e.Timestamp > c.ttlMs
}

func (c *Cache[T]) miss() {
	c.stats.Misses++
	c.observer.Miss(c.cfg.Name)
}

// evict drops el from memory and the Store. Callers hold c.mu.
func (c *Cache[T]) evict(el *list.Element, reason EvictReason) {
	entry := c.lru.Remove(el).(*Entry[T])
	delete(c.items, entry.Key)
	c.remove(entry.Key)

	if reason == EvictExpired {
		c.stats.Expirations++
	} else {
		c.stats.Evictions++
	}
	c.observer.Evicted(c.cfg.Name, reason)
}

// persist writes e to the Store. On failure any older record for the key is
// removed so a restore never brings back a value memory has replaced.
func (c *Cache[T]) persist(e *Entry[T]) {
	data, err := json.Marshal(record[T]{Value: e.Value, Timestamp: e.Timestamp})
	if err != nil {
		c.persistFailed("encode", e.Key, err)
		c.remove(e.Key)
		return
	}
	if err := c.store.Set(c.cfg.Prefix+e.Key, string(data)); err != nil {
		c.persistFailed("set", e.Key, err)
		c.remove(e.Key)
	}
}

func (c *Cache[T]) remove(key string) {
	if err := c.store.Remove(c.cfg.Prefix + key); err != nil {
		c.persistFailed("remove", key, err)
	}
}

func (c *Cache[T]) persistFailed(op, key string, err error) {
	c.stats.PersistErrors++
	c.observer.PersistFailed(c.cfg.Name, op)
	c.log.Warn().
		Err(err).
		Str("op", op).
		Str("key", key).
		Msg("Cache persistence failed, continuing in memory")
}

// restore loads the entries persisted under the prefix, oldest first, so the
// newest end up most recently used when more than MaxSize are stored.
func (c *Cache[T]) restore() {
	keys, err := c.store.Keys()
	if err != nil {
		c.persistFailed("restore", "", err)
		return
	}

	entries := make([]*Entry[T], 0)
	for _, k := range keys {
		key, ok := strings.CutPrefix(k, c.cfg.Prefix)
		if !ok {
			continue
		}

		raw, found, err := c.store.Get(k)
		if err != nil {
			c.persistFailed("restore", key, err)
			continue
		}
		if !found {
			continue
		}

		var rec record[T]
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			c.persistFailed("decode", key, err)
			c.remove(key)
			continue
		}
		entries = append(entries, &Entry[T]{Key: key, Value: rec.Value, Timestamp: rec.Timestamp})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp < entries[j].Timestamp
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range entries {
		if c.lru.Len() >= c.cfg.MaxSize {
			c.evict(c.lru.Back(), EvictCapacity)
		}
		c.items[e.Key] = c.lru.PushFront(e)
	}

	if len(entries) > 0 {
		c.log.Debug().Int("restored", c.lru.Len()).Msg("Cache restored from store")
	}
}
