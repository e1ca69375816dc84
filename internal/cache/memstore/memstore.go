// Package memstore is an in-process key/value store with an optional byte quota.
package memstore

import (
	"errors"
	"sort"
	"sync"
)

// ErrQuotaExceeded is returned by Set when the write would exceed the quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// Store keeps string values in a map. Usage is the sum of key and value lengths.
// A Store is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	data      map[string]string
	maxBytes  int64
	usedBytes int64
}

// Option configures a Store.
type Option func(*Store)

// WithQuota limits the total size of stored keys and values in bytes.
// Zero or negative means unlimited.
func WithQuota(maxBytes int64) Option {
	return func(s *Store) {
		s.maxBytes = maxBytes
	}
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{data: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func entrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key. The previous value, if any, does not count against the quota.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	used := s.usedBytes
	if old, ok := s.data[key]; ok {
		used -= entrySize(key, old)
	}
	used += entrySize(key, value)

	if s.maxBytes > 0 && used > s.maxBytes {
		return ErrQuotaExceeded
	}

	s.data[key] = value
	s.usedBytes = used
	return nil
}

// Remove deletes key.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.data[key]; ok {
		s.usedBytes -= entrySize(key, old)
		delete(s.data, key)
	}
	return nil
}

// Clear deletes every key.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string]string)
	s.usedBytes = 0
	return nil
}

// Keys returns every key in lexical order.
func (s *Store) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// UsedBytes returns the current usage counted against the quota.
func (s *Store) UsedBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.usedBytes
}
