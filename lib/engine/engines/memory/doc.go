// Package memory implements a volatile storage engine with sharded
// concurrent maps. It provides a complete implementation of the
// engine.IEngine interface for dictionaries that do not need to survive the
// process: tests, caches and scratch data.
//
// The package focuses on:
//   - Optimized concurrent access through sharding and a lock-free map
//   - Exact engine semantics (copy-in/copy-out of blobs, atomic per-key
//     operations) so tests against this engine transfer to the sqlite one
//   - Cheap size statistics through a write-side histogram
//
// Sharding Strategy:
//
//	Keys are distributed across shards in a two-step process:
//	1. String keys are hashed to 64-bit integers using FNV-1a with an
//	   instance-specific seed
//	2. The hash is right-shifted by 7 bits to use higher-quality bits for
//	   distribution
//	Each shard is an independent xsync.MapOf, so writes to different shards
//	never contend. GetInfo reports the observed shard distribution quality.
//
// Thread Safety:
//
//	All methods are safe for concurrent use. Blobs are copied on Put and on
//	Get, callers can never alias the stored bytes.
package memory
