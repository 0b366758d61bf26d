package memory

import (
	"runtime"
	"sync/atomic"

	"github.com/pdictdb/pdict/lib/engine"
	"github.com/pdictdb/pdict/lib/engine/util"
	"github.com/pdictdb/pdict/lib/errs"
	"github.com/puzpuzpuz/xsync/v3"
)

// --------------------------------------------------------------------------
// Core memory engine structure
// --------------------------------------------------------------------------

// memoryEngineImpl implements a volatile engine with sharded data. Each
// shard is an independent concurrent map, writes to different shards never
// contend. The engine holds no file handle and loses all data on Close,
// it exists for tests, caches and as the reference implementation of the
// engine contract.
type memoryEngineImpl struct {
	seed   uint64                         // Seed for the key-to-shard hash
	shards []*xsync.MapOf[string, []byte] // Partitions of the key space
	sizes  *util.SizeHistogram            // Blob sizes observed on Put
	closed atomic.Bool                    // Set once by Close
}

// Options configures the memory engine during initialization
type Options struct {
	NumShards int // Number of shards (0 = number of CPUs)
}

// DefaultOptions returns the default memory engine options
func DefaultOptions() *Options {
	return &Options{
		NumShards: runtime.NumCPU(),
	}
}

// --------------------------------------------------------------------------
// Initialization and Setup
// --------------------------------------------------------------------------

// NewMemoryEngine creates a new volatile engine with the specified options
// (optional).
//
// Thread-safety: This function is not thread-safe and should only be called
// once during initialization.
func NewMemoryEngine(opts *Options) engine.IEngine {
	if opts == nil {
		opts = DefaultOptions()
	}
	numShards := opts.NumShards
	if numShards <= 0 {
		numShards = runtime.NumCPU()
	}

	shards := make([]*xsync.MapOf[string, []byte], numShards)
	for i := range shards {
		shards[i] = xsync.NewMapOf[string, []byte]()
	}

	return &memoryEngineImpl{
		seed:   util.GenerateSeed(),
		shards: shards,
		sizes:  util.NewSizeHistogram(),
	}
}

// shard returns the partition responsible for a key
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *memoryEngineImpl) shard(key string) *xsync.MapOf[string, []byte] {
	hash := util.HashString(key, m.seed)
	// Shift right by 7 bits to use higher-quality bits for distribution
	return m.shards[(hash>>7)%uint64(len(m.shards))]
}

// guard returns a closed error for op if the engine was closed
func (m *memoryEngineImpl) guard(op, key string) error {
	if m.closed.Load() {
		return errs.New(errs.KindClosed, op, key)
	}
	return nil
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Write Operations
// --------------------------------------------------------------------------

// Put inserts or overwrites the blob stored under key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *memoryEngineImpl) Put(key string, blob []byte) error {
	if err := m.guard("engine.Put", key); err != nil {
		return err
	}

	// Copy the blob so later mutations by the caller cannot corrupt the map
	blobCopy := make([]byte, len(blob))
	copy(blobCopy, blob)

	m.shard(key).Store(key, blobCopy)
	m.sizes.Observe(len(blobCopy))
	return nil
}

// Delete removes the blob stored under key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *memoryEngineImpl) Delete(key string) (bool, error) {
	if err := m.guard("engine.Delete", key); err != nil {
		return false, err
	}

	_, removed := m.shard(key).LoadAndDelete(key)
	return removed, nil
}

// Clear removes all entries from all shards.
//
// Thread-safety: This method is thread-safe, entries written concurrently
// with Clear may survive it.
func (m *memoryEngineImpl) Clear() (int64, error) {
	if err := m.guard("engine.Clear", ""); err != nil {
		return 0, err
	}

	var removed int64
	for _, shard := range m.shards {
		removed += int64(shard.Size())
		shard.Clear()
	}
	return removed, nil
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Query Operations
// --------------------------------------------------------------------------

// Get retrieves the blob for an exact key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *memoryEngineImpl) Get(key string) ([]byte, bool, error) {
	if err := m.guard("engine.Get", key); err != nil {
		return nil, false, err
	}

	stored, ok := m.shard(key).Load(key)
	if !ok {
		return nil, false, nil
	}

	// Copy out, the caller must never see later overwrites
	blob := make([]byte, len(stored))
	copy(blob, stored)
	return blob, true, nil
}

// Has checks whether a key exists without copying its blob.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *memoryEngineImpl) Has(key string) (bool, error) {
	if err := m.guard("engine.Has", key); err != nil {
		return false, err
	}

	_, ok := m.shard(key).Load(key)
	return ok, nil
}

// Keys returns a snapshot of all keys across all shards.
//
// Thread-safety: This method is thread-safe. The snapshot is weakly
// consistent, writes concurrent with the scan may or may not be included.
func (m *memoryEngineImpl) Keys() ([]string, error) {
	if err := m.guard("engine.Keys", ""); err != nil {
		return nil, err
	}

	keys := make([]string, 0, m.size())
	for _, shard := range m.shards {
		shard.Range(func(key string, _ []byte) bool {
			keys = append(keys, key)
			return true
		})
	}
	return keys, nil
}

// Len returns the number of stored entries.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *memoryEngineImpl) Len() (int64, error) {
	if err := m.guard("engine.Len", ""); err != nil {
		return 0, err
	}
	return m.size(), nil
}

func (m *memoryEngineImpl) size() int64 {
	var n int64
	for _, shard := range m.shards {
		n += int64(shard.Size())
	}
	return n
}

// --------------------------------------------------------------------------
// Engine Interface Methods - Maintenance Operations
// --------------------------------------------------------------------------

// Compact is a no-op, the memory engine does not retain dead space.
func (m *memoryEngineImpl) Compact() error {
	return m.guard("engine.Compact", "")
}

// SupportsFeature checks if this implementation supports a specific engine feature
func (m *memoryEngineImpl) SupportsFeature(feature engine.Feature) bool {
	supported := engine.FeatureSharded
	return supported&feature == feature
}

// GetInfo returns statistics about the engine. Sizes are estimates based on
// the blob sizes observed on writes, not a live scan.
func (m *memoryEngineImpl) GetInfo() (engine.Info, error) {
	if err := m.guard("engine.GetInfo", ""); err != nil {
		return engine.Info{}, err
	}

	shardSizes := make([]float64, len(m.shards))
	var keys int64
	for i, shard := range m.shards {
		size := shard.Size()
		shardSizes[i] = float64(size)
		keys += int64(size)
	}

	// weighted estimate (60% median, 40% average) of the per-blob size
	perBlob := (m.sizes.Median()*60 + m.sizes.Average()*40) / 100

	meta := &struct {
		ShardCount        int                    `json:"shard_count"`
		ShardDistribution util.DistributionStats `json:"shard_distribution"`
		Info              string                 `json:"info"`
	}{
		ShardCount:        len(m.shards),
		ShardDistribution: util.NewDistributionStats(shardSizes),
		Info:              "All values (including SizeBytes) are estimates and may vary depending on the engine state.",
	}

	return engine.Info{
		Type:      engine.ImplMemory,
		SizeBytes: int64(perBlob) * keys,
		Keys:      keys,
		SupportedFeatures: []engine.Feature{
			engine.FeatureSharded,
		},
		Metadata: meta,
	}, nil
}

// Close releases all shards. The data is gone afterwards, all subsequent
// calls return closed errors. Close is idempotent.
func (m *memoryEngineImpl) Close() error {
	if !m.closed.CompareAndSwap(false, true) {
		return nil
	}
	for _, shard := range m.shards {
		shard.Clear()
	}
	return nil
}
