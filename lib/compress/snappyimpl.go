package compress

import (
	"github.com/klauspost/compress/snappy"
)

// NewSnappyCompressor creates a new compressor using the snappy block
// format. Snappy trades ratio for speed and has no levels, it is a good
// fit for small values on hot paths.
func NewSnappyCompressor() ICompressor {
	return &snappyCompressorImpl{}
}

// snappyCompressorImpl implements the ICompressor interface using snappy
type snappyCompressorImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see compress.ICompressor)
// --------------------------------------------------------------------------

func (s snappyCompressorImpl) Name() string {
	return "snappy"
}

func (s snappyCompressorImpl) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (s snappyCompressorImpl) Decompress(data []byte) ([]byte, error) {
	return snappy.Decode(nil, data)
}
