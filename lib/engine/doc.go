// Package engine provides a standardized interface for the storage backends
// of the dictionary. It defines the IEngine interface, a byte-level adapter
// that stores opaque blobs under string keys while abstracting all backend
// details.
//
// The package focuses on:
//   - A unified interface for blob storage operations
//   - Feature discovery through capability flags
//   - Uniform error reporting through the errs package
//   - Standardized metadata reporting
//
// Key Components:
//
//   - IEngine Interface: The core interface that all engine implementations
//     must satisfy. It provides write operations (Put, Delete, Clear), query
//     operations (Get, Has, Keys, Len), and maintenance operations (Compact,
//     GetInfo, Close).
//
//   - Feature Flags: The Feature type defines capability flags that
//     implementations can advertise through the SupportsFeature method.
//     Unlike the core operations, which every engine must support, features
//     describe properties such as persistence across reopen or support for
//     space reclamation.
//
//   - Implementation Identifiers: The Implementation type provides string
//     constants for the shipped backends ("sqlite" and "memory").
//
//   - Engine Information: The Info structure provides standardized reporting
//     on engine state, including size statistics, implementation type, and
//     implementation-specific metadata. Note: size statistics may be
//     estimates since a precise calculation can be expensive.
//
// Error Contract:
//
//	Engines never invent their own error types. Backend failures are
//	wrapped as storage errors and use after Close as closed errors, both
//	carrying the failing operation and key. A missing key is not an error
//	at this level, it is reported through the boolean return values. This
//	keeps the error taxonomy of the dictionary independent of the backend.
//
// Atomicity Contract:
//
//	Each single call must be atomic with respect to concurrent calls for
//	the same key: a Get concurrent with a Put observes either the old or
//	the new blob, never a mix. Multi-call sequences are NOT atomic at this
//	level, the dictionary layers per-key locking on top for its
//	read-modify-write operations.
//
// Related Packages:
//
// The engines/sqlite package (github.com/pdictdb/pdict/lib/engine/engines/sqlite)
// provides the persistent implementation backed by a single database file in
// WAL mode. This is the default engine of the dictionary.
//
// The engines/memory package (github.com/pdictdb/pdict/lib/engine/engines/memory)
// provides a volatile sharded implementation used for tests, caches and as
// the reference implementation of the engine contract.
//
// The util package (github.com/pdictdb/pdict/lib/engine/util) provides
// complementary tools for engine implementations (size histograms and
// distribution statistics).
//
// The testing package (github.com/pdictdb/pdict/lib/engine/testing) provides
// standardized tests and benchmarks for engine implementations:
//   - RunEngineTests: Runs a standardized test suite to validate implementations
//   - RunEngineBenchmarks: Provides performance benchmarks for comparing implementations
package engine
