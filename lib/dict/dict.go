package dict

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pdictdb/pdict/lib/engine"
	"github.com/pdictdb/pdict/lib/engine/engines/sqlite"
	"github.com/pdictdb/pdict/lib/errs"
	"github.com/pdictdb/pdict/lib/keylock"
	"github.com/pdictdb/pdict/lib/logger"
	"github.com/pdictdb/pdict/lib/pipeline"
)

// --------------------------------------------------------------------------
// Factory Method
// --------------------------------------------------------------------------

// New opens the persistent dictionary stored in the sqlite database at path,
// creating the file if it does not exist. Pass nil opts for the defaults
// (see DefaultOptions). When opts.Engine is set the path is only remembered
// for log messages and the given engine is used instead.
//
// The returned dictionary must be released with Close.
func New(path string, opts *Options) (IDictionary, error) {
	opts = opts.normalized()

	e := opts.Engine
	if e == nil {
		sqlOpts := sqlite.DefaultOptions(path)
		sqlOpts.BusyTimeout = opts.BusyTimeout
		var err error
		if e, err = sqlite.NewSQLiteEngine(sqlOpts); err != nil {
			return nil, err
		}
	}

	d := &dictImpl{
		path:   path,
		opts:   opts,
		engine: e,
		pipe:   pipeline.New(opts.Codec, opts.Compressor),
		locks:  keylock.NewLockTable(),
		logger: opts.Logger,
		stats:  newDictStats(opts.MetricsEnabled),
	}
	d.logger.Infof("dictionary opened (path=%q, codec=%s, compressor=%s, isolation=%s)",
		path, d.pipe.CodecName(), d.pipe.CompressorName(), opts.Isolation)
	return d, nil
}

// --------------------------------------------------------------------------
// Implementation
// --------------------------------------------------------------------------

// dictImpl implements the IDictionary interface on top of a storage engine.
//
// Thread-safety: every operation holds lifecycle read-side for its whole
// duration, Clear and Close hold it write-side and therefore run alone.
// Writers additionally hold the per-key lock of the key they update, which
// makes read-modify-write cycles on one key atomic. In serialized mode each
// engine call also goes through engineMu. Locks are always acquired in the
// order lifecycle, key lock, engineMu.
type dictImpl struct {
	path   string
	opts   *Options
	engine engine.IEngine
	pipe   *pipeline.Pipeline
	locks  keylock.ILockTable
	logger logger.ILogger
	stats  *dictStats

	closed    atomic.Bool
	lifecycle sync.RWMutex
	engineMu  sync.Mutex
}

// guard returns a closed error when the dictionary is no longer usable.
// Must be called with lifecycle held.
func (d *dictImpl) guard(op, key string) error {
	if d.closed.Load() {
		return errs.New(errs.KindClosed, op, key)
	}
	return nil
}

// gate acquires the engine mutex in serialized mode and returns the matching
// release function. In engine-native mode it is a no-op.
func (d *dictImpl) gate() func() {
	if d.opts.Isolation == IsolationSerialized {
		d.engineMu.Lock()
		return d.engineMu.Unlock
	}
	return func() {}
}

func (d *dictImpl) engineGet(key string) ([]byte, bool, error) {
	defer d.gate()()
	return d.engine.Get(key)
}

func (d *dictImpl) enginePut(key string, blob []byte) error {
	defer d.gate()()
	return d.engine.Put(key, blob)
}

func (d *dictImpl) engineDelete(key string) (bool, error) {
	defer d.gate()()
	return d.engine.Delete(key)
}

func (d *dictImpl) engineHas(key string) (bool, error) {
	defer d.gate()()
	return d.engine.Has(key)
}

func (d *dictImpl) engineKeys() ([]string, error) {
	defer d.gate()()
	return d.engine.Keys()
}

func (d *dictImpl) engineLen() (int64, error) {
	defer d.gate()()
	return d.engine.Len()
}

// load reads and unpacks the entry for key. A missing key is reported via
// loaded=false, a present but unreadable entry via err.
func (d *dictImpl) load(key string) (Entry, bool, error) {
	blob, loaded, err := d.engineGet(key)
	if err != nil || !loaded {
		return Entry{}, false, err
	}
	var entry Entry
	if err := d.pipe.Unpack(key, blob, &entry); err != nil {
		d.logger.Errorf("unreadable entry for key %q: %v", key, err)
		return Entry{}, false, err
	}
	return entry, true, nil
}

// store packs entry and writes it under key.
func (d *dictImpl) store(key string, entry Entry) error {
	blob, err := d.pipe.Pack(key, &entry)
	if err != nil {
		return err
	}
	return d.enginePut(key, blob)
}

// get implements Get and GetValue (they only differ in the op name used for
// errors and in what they hand back).
func (d *dictImpl) get(op, key string) (Entry, bool, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard(op, key); err != nil {
		return Entry{}, false, err
	}

	d.stats.gets.Inc()
	entry, loaded, err := d.load(key)
	if err != nil {
		d.stats.errors.Inc()
		return Entry{}, false, err
	}
	if !loaded {
		d.stats.misses.Inc()
		return Entry{}, false, nil
	}
	d.stats.hits.Inc()
	return entry, true, nil
}

// items implements Items and Values.
func (d *dictImpl) items(op string, fn func(key string, entry Entry) error) error {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard(op, ""); err != nil {
		return err
	}

	keys, err := d.engineKeys()
	if err != nil {
		d.stats.errors.Inc()
		return err
	}
	for _, key := range keys {
		entry, loaded, err := d.load(key)
		if err != nil {
			d.stats.errors.Inc()
			return err
		}
		if !loaded {
			// Deleted between the key snapshot and this read.
			continue
		}
		if err := fn(key, entry); err != nil {
			return err
		}
	}
	return nil
}

// --------------------------------------------------------------------------
// Interface Methods (docu see dict.IDictionary)
// --------------------------------------------------------------------------

func (d *dictImpl) Set(key string, value interface{}) error {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Set", key); err != nil {
		return err
	}
	d.locks.Lock(key)
	defer d.locks.Unlock(key)

	entry, loaded, err := d.load(key)
	if err != nil {
		d.stats.errors.Inc()
		return err
	}
	now := time.Now().UTC()
	if loaded {
		entry.Value = value
		entry.UpdatedAt = now
	} else {
		entry = Entry{
			Value:     value,
			Metadata:  map[string]interface{}{},
			CreatedAt: now,
			UpdatedAt: now,
		}
	}
	if err := d.store(key, entry); err != nil {
		d.stats.errors.Inc()
		return err
	}
	d.stats.sets.Inc()
	return nil
}

func (d *dictImpl) SetMeta(key string, meta interface{}) error {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.SetMeta", key); err != nil {
		return err
	}
	d.locks.Lock(key)
	defer d.locks.Unlock(key)

	entry, loaded, err := d.load(key)
	if err != nil {
		d.stats.errors.Inc()
		return err
	}
	if !loaded {
		return errs.New(errs.KindKeyNotFound, "dict.SetMeta", key)
	}
	// Timestamps stay untouched, metadata writes are invisible to them.
	entry.Metadata = meta
	if err := d.store(key, entry); err != nil {
		d.stats.errors.Inc()
		return err
	}
	d.stats.metaWrites.Inc()
	return nil
}

func (d *dictImpl) Delete(key string) error {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Delete", key); err != nil {
		return err
	}
	d.locks.Lock(key)
	defer d.locks.Unlock(key)

	if _, err := d.engineDelete(key); err != nil {
		d.stats.errors.Inc()
		return err
	}
	d.stats.deletes.Inc()
	return nil
}

func (d *dictImpl) Clear() error {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()
	if err := d.guard("dict.Clear", ""); err != nil {
		return err
	}

	removed, err := d.engine.Clear()
	if err != nil {
		d.stats.errors.Inc()
		return err
	}
	d.logger.Infof("dictionary cleared (%d entries removed)", removed)
	return nil
}

func (d *dictImpl) Merge(other IDictionary, override bool) error {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Merge", ""); err != nil {
		return err
	}
	if same, ok := other.(*dictImpl); ok && same == d {
		return nil
	}

	return other.Items(func(key string, entry Entry) error {
		d.locks.Lock(key)
		defer d.locks.Unlock(key)

		existing, loaded, err := d.load(key)
		if err != nil {
			d.stats.errors.Inc()
			return err
		}
		if loaded && !override {
			return nil
		}
		now := time.Now().UTC()
		merged := Entry{
			Value:     entry.Value,
			Metadata:  entry.Metadata,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if loaded {
			merged.CreatedAt = existing.CreatedAt
		}
		if err := d.store(key, merged); err != nil {
			d.stats.errors.Inc()
			return err
		}
		d.stats.sets.Inc()
		return nil
	})
}

func (d *dictImpl) Contains(key string) (bool, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Contains", key); err != nil {
		return false, err
	}

	loaded, err := d.engineHas(key)
	if err != nil {
		d.stats.errors.Inc()
		return false, err
	}
	return loaded, nil
}

func (d *dictImpl) Get(key string) (Entry, bool, error) {
	return d.get("dict.Get", key)
}

func (d *dictImpl) GetValue(key string) (interface{}, bool, error) {
	entry, loaded, err := d.get("dict.GetValue", key)
	if err != nil || !loaded {
		return nil, false, err
	}
	return entry.Value, true, nil
}

func (d *dictImpl) Meta(key string) (interface{}, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Meta", key); err != nil {
		return nil, err
	}

	d.stats.metaReads.Inc()
	entry, loaded, err := d.load(key)
	if err != nil {
		d.stats.errors.Inc()
		return nil, err
	}
	if !loaded {
		return nil, errs.New(errs.KindKeyNotFound, "dict.Meta", key)
	}
	return entry.Metadata, nil
}

func (d *dictImpl) Keys() ([]string, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Keys", ""); err != nil {
		return nil, err
	}

	keys, err := d.engineKeys()
	if err != nil {
		d.stats.errors.Inc()
		return nil, err
	}
	return keys, nil
}

func (d *dictImpl) Items(fn func(key string, entry Entry) error) error {
	return d.items("dict.Items", fn)
}

func (d *dictImpl) Values(fn func(value interface{}) error) error {
	return d.items("dict.Values", func(_ string, entry Entry) error {
		return fn(entry.Value)
	})
}

func (d *dictImpl) Len() (int, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Len", ""); err != nil {
		return 0, err
	}

	n, err := d.engineLen()
	if err != nil {
		d.stats.errors.Inc()
		return 0, err
	}
	return int(n), nil
}

func (d *dictImpl) Copy() (IDictionary, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Copy", ""); err != nil {
		return nil, err
	}
	if d.opts.Engine != nil {
		return nil, errs.Wrap(errs.KindStorage, "dict.Copy", "",
			fmt.Errorf("dictionary is backed by an injected engine"))
	}
	return New(d.path, d.opts)
}

func (d *dictImpl) Info() (engine.Info, error) {
	d.lifecycle.RLock()
	defer d.lifecycle.RUnlock()
	if err := d.guard("dict.Info", ""); err != nil {
		return engine.Info{}, err
	}

	defer d.gate()()
	info, err := d.engine.GetInfo()
	if err != nil {
		d.stats.errors.Inc()
		return engine.Info{}, err
	}
	return info, nil
}

func (d *dictImpl) Metrics(w io.Writer) {
	d.stats.WritePrometheus(w)
}

func (d *dictImpl) Close() error {
	d.lifecycle.Lock()
	defer d.lifecycle.Unlock()
	if !d.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := d.engine.Close(); err != nil {
		return err
	}
	d.logger.Infof("dictionary closed (path=%q)", d.path)
	return nil
}
