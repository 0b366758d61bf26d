package dict

import (
	"io"
	"time"

	"github.com/pdictdb/pdict/lib/engine"
)

// --------------------------------------------------------------------------
// Entry Model
// --------------------------------------------------------------------------

// Entry is the composite stored under each key of a dictionary. Value holds
// the caller's data, Metadata holds caller-managed auxiliary data that lives
// next to the value but is written and read independently of it.
//
// CreatedAt is set once when the key is first written and survives every
// later update. UpdatedAt changes on every value write. Metadata writes touch
// neither timestamp. Both timestamps are UTC.
//
// Entries returned by a dictionary are decoded copies, mutating them (or
// maps and slices inside them) never changes what is stored.
type Entry struct {
	Value     interface{} `json:"value" msgpack:"value" cbor:"value"`
	Metadata  interface{} `json:"metadata" msgpack:"metadata" cbor:"metadata"`
	CreatedAt time.Time   `json:"created_at" msgpack:"created_at" cbor:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" msgpack:"updated_at" cbor:"updated_at"`
}

// --------------------------------------------------------------------------
// Isolation Modes
// --------------------------------------------------------------------------

// Isolation selects how a dictionary serializes access to its storage engine.
type Isolation int

const (
	// IsolationSerialized guards every engine call with a dictionary-wide
	// mutex, so the engine only ever sees one call at a time. This is the
	// safe default and works with any engine.
	IsolationSerialized Isolation = iota

	// IsolationEngineNative passes calls straight through and relies on the
	// engine's own thread-safety. Faster under concurrent load, but only as
	// safe as the engine makes it.
	IsolationEngineNative
)

// String returns the canonical name of the isolation mode.
func (i Isolation) String() string {
	switch i {
	case IsolationSerialized:
		return "serialized"
	case IsolationEngineNative:
		return "engine-native"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IDictionary is a persistent, thread-safe dictionary mapping string keys to
// entries (value plus metadata plus timestamps). All write operations return
// only an error (nil on success), while read operations return the requested
// data along with an error (nil on success).
//
// Every method is safe for concurrent use. Updates to a single key are
// atomic: two racing writers resolve to one complete entry, never to a mix
// of both. After Close every method fails with a closed error (see the errs
// package), a closed dictionary cannot be reopened.
type IDictionary interface {
	// Set inserts or updates the value for a key. On an existing key the
	// metadata and CreatedAt are preserved and UpdatedAt is refreshed, on a
	// new key the metadata starts as an empty map and both timestamps are
	// set to now.
	Set(key string, value interface{}) (err error)

	// SetMeta replaces the metadata for an existing key. The value and both
	// timestamps stay untouched. Writing metadata for a missing key fails
	// with a key-not-found error.
	SetMeta(key string, meta interface{}) (err error)

	// Delete removes a key and its entry. Deleting a missing key is a no-op,
	// not an error.
	Delete(key string) (err error)

	// Clear removes every entry. It waits for in-flight operations to finish
	// and runs exclusively.
	Clear() (err error)

	// Merge copies every entry (value and metadata) of other into this
	// dictionary. Keys that already exist here are kept unless override is
	// true. Merging a dictionary into itself is a no-op.
	Merge(other IDictionary, override bool) (err error)

	// Contains reports whether a key exists, without decoding its entry.
	Contains(key string) (loaded bool, err error)

	// Get returns the full entry for a key. The boolean return value
	// indicates whether the key was found, a missing key is not an error.
	Get(key string) (entry Entry, loaded bool, err error)

	// GetValue returns just the value for a key. The boolean return value
	// indicates whether the key was found, a missing key is not an error.
	GetValue(key string) (value interface{}, loaded bool, err error)

	// Meta returns the metadata for an existing key. Reading metadata of a
	// missing key fails with a key-not-found error.
	Meta(key string) (meta interface{}, err error)

	// Keys returns all keys. The order depends on the engine.
	Keys() (keys []string, err error)

	// Items calls fn once per entry. The key set is captured when the
	// iteration starts: keys deleted while iterating are skipped, keys
	// written while iterating may or may not be visited. If fn returns an
	// error the iteration stops and that error is returned unchanged.
	// fn must not call mutating methods of the dictionary.
	Items(fn func(key string, entry Entry) error) (err error)

	// Values calls fn once per stored value, with the same iteration
	// semantics as Items.
	Values(fn func(value interface{}) error) (err error)

	// Len returns the number of stored entries.
	Len() (n int, err error)

	// Copy opens a second, independent handle on the same database file
	// using the same options. It fails for dictionaries backed by an
	// injected engine (see Options.Engine).
	Copy() (dict IDictionary, err error)

	// Info returns metadata about the underlying storage engine.
	// It is not guaranteed that all fields are filled in!
	Info() (info engine.Info, err error)

	// Metrics writes the dictionary's usage counters in Prometheus text
	// format to w. It writes nothing when metrics are disabled. Unlike all
	// other methods it also works on a closed dictionary, so final counter
	// values can still be collected.
	Metrics(w io.Writer)

	// Close releases the dictionary and its engine. Close is idempotent,
	// every call after the first returns nil.
	Close() (err error)
}
