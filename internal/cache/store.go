package cache

// Store is the persistent key/value layer a Cache mirrors its entries to.
// Implementations may reject writes, e.g. when a capacity quota is reached.
type Store interface {
	// Get returns the value stored under key and whether it exists.
	Get(key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Clear deletes every key in the store, including keys owned by other caches.
	Clear() error

	// Keys lists every key in the store.
	Keys() ([]string, error)
}

// nopStore is used when a Cache is created without persistence.
type nopStore struct{}

func (nopStore) Get(string) (string, bool, error) { return "", false, nil }
func (nopStore) Set(string, string) error         { return nil }
func (nopStore) Remove(string) error              { return nil }
func (nopStore) Clear() error                     { return nil }
func (nopStore) Keys() ([]string, error)          { return nil, nil }

var _ Store = nopStore{}
