// Package storage wraps local persistence behind a single key/value boundary.
// All higher components route reads and writes through a Store; the persisted
// blobs keep the exact formats the legacy storefront wrote to browser local
// storage, so state directories survive round-trips between implementations.
package storage

import "encoding/json"

// ChangeEvent describes a mutation of a stored key observed from outside the
// current process. It is the analogue of the browser "storage" event: writers
// never receive notifications for their own writes.
type ChangeEvent struct {
	Key string
}

// WatchFunc receives external change notifications
type WatchFunc func(ChangeEvent)

// Store is the sole persistence boundary for client state.
//
// Get never fails observably: a missing key or undecodable value leaves out
// untouched and returns false. Set serializes the value as JSON; failures are
// reported but callers are expected to degrade rather than abort.
type Store interface {
	// Get decodes the value under key into out and reports whether a usable
	// value was found
	Get(key string, out any) bool
	// GetRaw returns the stored bytes under key, if any
	GetRaw(key string) ([]byte, bool)
	// Set stores the JSON encoding of value under key
	Set(key string, value any) error
	// SetRaw stores raw bytes under key
	SetRaw(key string, raw []byte) error
	// Remove deletes the key; removing an absent key is a no-op
	Remove(key string) error
	// Keys lists every stored key
	Keys() []string
	// Watch registers fn for external change notifications
	Watch(fn WatchFunc)
	// Close releases watchers and connections
	Close() error
}

// decode is the shared tolerant JSON decode used by every backend
func decode(raw []byte, out any) bool {
	if len(raw) == 0 {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}

// encode is the shared JSON encode used by every backend
func encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// GetString reads a plain string value, tolerating both JSON-quoted and bare
// historical encodings (the legacy storefront wrote fx rates unquoted)
func GetString(s Store, key, fallback string) string {
	raw, ok := s.GetRaw(key)
	if !ok || len(raw) == 0 {
		return fallback
	}
	var v string
	if json.Unmarshal(raw, &v) == nil {
		return v
	}
	return string(raw)
}
