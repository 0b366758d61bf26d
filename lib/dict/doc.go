// Package dict provides a persistent, thread-safe dictionary backed by a
// single database file. It maps string keys to entries, where an entry
// bundles an arbitrary structured value with caller-managed metadata and two
// timestamps (created, updated). Entries are encoded and compressed into one
// blob per key and handed to a storage engine.
//
// Basic Usage:
//
//	d, err := dict.New("app.db", nil)
//	if err != nil {
//		...
//	}
//	defer d.Close()
//
//	err = d.Set("answer", map[string]interface{}{"n": 42})
//	entry, loaded, err := d.Get("answer")
//
// Key Components:
//
//   - IDictionary Interface: The dictionary API with value operations (Set,
//     Get, GetValue, Delete), metadata operations (Meta, SetMeta), bulk and
//     iteration operations (Keys, Items, Values, Len, Clear, Merge) and
//     lifecycle operations (Copy, Info, Metrics, Close).
//
//   - Entry Model: Values and metadata live in the same stored blob but are
//     written independently: Set preserves existing metadata, SetMeta
//     preserves the value and both timestamps. CreatedAt survives every
//     update, UpdatedAt follows value writes.
//
//   - Options: Construction is configured through the Options struct (codec,
//     compressor, isolation mode, busy timeout, engine injection, logger,
//     metrics) or through PDICT_* environment variables via OptionsFromEnv.
//
// Concurrency Model:
//
//	All methods are safe for concurrent use. Value and metadata updates are
//	read-modify-write cycles, the dictionary serializes them per key so two
//	racing writers on the same key resolve to one complete entry, never to
//	a mix of both. The isolation mode additionally decides how engine calls
//	are scheduled: IsolationSerialized (the default) admits one engine call
//	at a time, IsolationEngineNative lets the engine handle concurrency
//	itself. Clear and Close wait for in-flight operations and run alone.
//
// Error Handling:
//
//	All failures are *errs.Error values carrying a kind, the failing
//	operation and the key. The metadata operations (Meta, SetMeta) are the
//	only place a key-not-found error occurs, plain lookups report absence
//	through their boolean return instead. A stored blob that cannot be
//	decompressed surfaces as a corruption error and is never silently
//	treated as a missing key. After Close every method fails with a closed
//	error. See the errs package for the matching predicates.
//
// Persistence:
//
//	The default engine is a sqlite database file in WAL mode, so a
//	dictionary can be reopened by a later process and keeps entries,
//	metadata and timestamps across restarts. Any other engine.IEngine can
//	be injected through Options.Engine, e.g. the volatile memory engine
//	for tests.
package dict
