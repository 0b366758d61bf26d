// Package compress provides blob compression for the dictionary. Encoded
// values pass through a compressor before they are written to the storage
// engine and through the matching decompressor on the way back.
//
// Key Components:
//
//   - ICompressor: Core interface that all compressor implementations must
//     satisfy.
//
//   - zlibCompressorImpl: zlib streams with a configurable level (default 6).
//     The module default, chosen for its predictable ratios on the small
//     structured values a dictionary typically holds.
//
//   - zstdCompressorImpl: zstandard block compression. Faster than zlib at
//     comparable ratios, preferable for large values. Encoder and decoder
//     are shared across calls.
//
//   - snappyCompressorImpl: snappy block format. Very fast, moderate ratio,
//     no levels.
//
//   - noneCompressorImpl: identity pass-through for incompressible values.
//
// Format Stability:
//
//	A dictionary file must always be opened with the compressor it was
//	written with. The pipeline stores a format version byte but not the
//	compressor name, mixing compressors on one file surfaces as corruption
//	errors on read.
//
// Thread Safety:
//
//	All compressor implementations are safe for concurrent use. The zlib
//	implementation creates a fresh writer per call, the zstd implementation
//	relies on the concurrency guarantees of EncodeAll/DecodeAll.
package compress
