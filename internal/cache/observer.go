package cache

// EvictReason tells why an entry left the cache.
type EvictReason string

const (
	// EvictCapacity means the entry was least recently used when the cache was full.
	EvictCapacity EvictReason = "capacity"

	// EvictExpired means the entry outlived the TTL.
	EvictExpired EvictReason = "expired"
)

// Observer receives cache events, typically to export them as metrics.
// Calls happen while the cache lock is held and must not call back into the cache.
type Observer interface {
	Hit(cache string)
	Miss(cache string)
	Evicted(cache string, reason EvictReason)
	PersistFailed(cache, op string)
}

type nopObserver struct{}

func (nopObserver) Hit(string)                   {}
func (nopObserver) Miss(string)                  {}
func (nopObserver) Evicted(string, EvictReason)  {}
func (nopObserver) PersistFailed(string, string) {}
