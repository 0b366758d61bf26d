// Package codec provides value serialization for the dictionary. It defines
// a common interface and multiple implementations for encoding and decoding
// the values and metadata stored under each key.
//
// The package focuses on:
//   - Providing a consistent interface for different serialization formats
//   - Offering implementations with different fidelity/readability trade-offs
//   - Round-tripping arbitrary Go values without schema definitions
//
// Key Components:
//
//   - ICodec: Core interface that all codec implementations must satisfy.
//
//   - msgpackCodecImpl: MessagePack implementation and the module default.
//     Compact and fast, with loose interface decoding so numbers come back
//     as int64/uint64/float64 regardless of their encoded width.
//
//   - cborCodecImpl: CBOR (RFC 8949) implementation. Slightly larger output
//     than MessagePack but a standardized format with wide cross-language
//     support. Configured to decode maps as map[string]interface{} and
//     timestamps as RFC 3339 strings.
//
//   - jsonCodecImpl: Implementation using JSON encoding, useful for debugging
//     or interoperability with other systems, but with lower type fidelity
//     (numbers become float64, []byte becomes a base64 string).
//
// Type Fidelity:
//
//	Values are stored schema-less, so what a codec can represent determines
//	what comes back from Get. The msgpack and cbor codecs preserve the
//	distinction between integers, floats, strings, []byte, time.Time, maps
//	and slices. Structs round-trip as maps unless decoded into a typed
//	target. Choose the codec once per dictionary file and stick with it:
//	blobs written with one codec are not readable with another.
//
// Thread Safety:
//
//	All codec implementations are stateless (or share immutable state) and
//	safe for concurrent use across multiple goroutines without additional
//	synchronization.
//
// Usage:
//
//	Codecs are typically created once and passed to the dictionary options:
//
//	  opts := dict.DefaultOptions()
//	  opts.Codec = codec.NewCBORCodec()
//	  d, err := dict.New("data.db", opts)
package codec
