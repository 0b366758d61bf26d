package compress

// ICompressor is the interface for all blob compressors. A compressor sits
// behind the codec in the storage pipeline: encoded bytes go in, compressed
// bytes come out, and Decompress restores the exact original bytes.
type ICompressor interface {
	// Name returns the canonical name of the compressor (e.g. "zlib").
	// The name is used in configuration and metrics labels.
	Name() string
	// Compress compresses a byte array.
	// It returns the compressed byte array and an error if any.
	Compress(data []byte) ([]byte, error)
	// Decompress restores a byte array previously produced by Compress.
	// It returns the original byte array and an error if any.
	Decompress(data []byte) ([]byte, error)
}
