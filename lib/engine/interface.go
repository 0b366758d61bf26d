package engine

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

type Implementation string

const (
	ImplSQLite Implementation = "sqlite"
	ImplMemory Implementation = "memory"
)

// Feature represents optional engine capabilities as bit flags. The core
// operations (Put, Get, Has, Delete, Keys, Len, Clear) are mandatory for
// every implementation and therefore not feature-gated.
type Feature uint64

const (
	FeaturePersistent Feature = 1 << iota // Data survives Close and reopen
	FeatureCompaction                     // Supports reclaiming space via Compact
	FeatureSharded                        // Partitions data internally for write throughput
)

func (f Feature) String() string {
	switch f {
	case FeaturePersistent:
		return "Persistent"
	case FeatureCompaction:
		return "Compaction"
	case FeatureSharded:
		return "Sharded"
	default:
		return "Unknown"
	}
}

// Info describes an engine instance. Not all fields are meaningful for all
// implementations (a memory engine has no path, for example) and size values
// may be estimates.
type Info struct {
	Type              Implementation `json:"type"`
	Path              string         `json:"path,omitempty"`
	SizeBytes         int64          `json:"size_bytes"`
	Keys              int64          `json:"keys"`
	SupportedFeatures []Feature      `json:"supported_features"`
	Metadata          interface{}    `json:"metadata,omitempty"`
}

// Factory is a function type that opens a new engine. It is used to abstract
// the construction of the engine from the dictionary implementation.
type Factory func() (IEngine, error)

// --------------------------------------------------------------------------
// Engine Interface
// --------------------------------------------------------------------------

// IEngine is the byte-level adapter over a storage backend. It stores opaque
// blobs under string keys and knows nothing about codecs, timestamps or the
// entry layout, that is the job of the layers above.
//
// Error contract: every method returns *errs.Error values. Backend failures
// surface as storage errors, use after Close as closed errors. A missing key
// is NOT an error at this level, it is reported through the boolean returns.
//
// Implementations must be safe for concurrent use, and each single call must
// be atomic with respect to concurrent calls for the same key.
type IEngine interface {

	// --------------------------------------------------------------------------
	// Write Operations
	// --------------------------------------------------------------------------

	// Put inserts or overwrites the blob stored under key.
	Put(key string, blob []byte) (err error)

	// Delete removes the blob stored under key. Removing a missing key is
	// not an error, the boolean reports whether an entry was removed.
	Delete(key string) (removed bool, err error)

	// Clear removes all entries and returns how many were removed.
	Clear() (removed int64, err error)

	// --------------------------------------------------------------------------
	// Query Operations
	// --------------------------------------------------------------------------

	// Get retrieves the blob for an exact key.
	// The boolean return value indicates whether the key was found.
	Get(key string) (blob []byte, loaded bool, err error)

	// Has checks whether a key exists without loading its blob.
	Has(key string) (loaded bool, err error)

	// Keys returns a snapshot of all keys. The snapshot is taken at call
	// time, concurrent writes may or may not be reflected.
	Keys() (keys []string, err error)

	// Len returns the number of stored entries.
	Len() (n int64, err error)

	// --------------------------------------------------------------------------
	// Maintenance Operations
	// --------------------------------------------------------------------------

	// Compact reclaims unused space. Only meaningful for engines that
	// report FeatureCompaction, others return nil without doing anything.
	Compact() (err error)

	// SupportsFeature checks if the engine supports the specified feature.
	// Multiple features can be checked at once using bitwise OR (|) operator.
	SupportsFeature(feature Feature) (ok bool)

	// GetInfo returns information about the engine.
	// It is not guaranteed that all fields are filled in or that the information is up-to-date!
	GetInfo() (info Info, err error)

	// Close releases the engine. All subsequent calls return closed errors.
	// Close is idempotent, calling it twice returns nil the second time.
	Close() (err error)
}
