package compress

// NewNoneCompressor creates a pass-through compressor that stores blobs
// uncompressed. Useful for values that are already compressed (images,
// archives) or when CPU is scarcer than disk.
func NewNoneCompressor() ICompressor {
	return &noneCompressorImpl{}
}

// noneCompressorImpl implements the ICompressor interface as the identity
type noneCompressorImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see compress.ICompressor)
// --------------------------------------------------------------------------

func (n noneCompressorImpl) Name() string {
	return "none"
}

func (n noneCompressorImpl) Compress(data []byte) ([]byte, error) {
	return data, nil
}

func (n noneCompressorImpl) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
