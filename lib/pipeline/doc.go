// Package pipeline composes a codec and a compressor into the on-disk blob
// format of the dictionary.
//
// Blob Layout:
//
//	+----------------+--------------------------------+
//	| version (1B)   | compress(encode(value))        |
//	+----------------+--------------------------------+
//
// The single leading version byte identifies the blob layout itself, not the
// codec or compressor, those are configuration that must stay stable for the
// lifetime of a dictionary file.
//
// Error Semantics:
//
//	Pack failures are always serialization errors. Unpack distinguishes two
//	cases: a blob that cannot be decompressed (or has an unknown version) is
//	damaged and reported as corruption, while bytes that decompress fine but
//	do not decode were written with a different codec or represent a value
//	the codec cannot express, which is reported as a serialization error.
package pipeline
