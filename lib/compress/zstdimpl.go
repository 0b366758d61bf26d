package compress

import (
	"github.com/klauspost/compress/zstd"
)

// NewZstdCompressor creates a new compressor using the zstandard format.
// Zstd compresses faster than zlib at comparable ratios and is the better
// choice for large values. The level uses the zstd scale (1-22) and is
// mapped onto the encoder speed presets, 3 matches the zstd default.
func NewZstdCompressor(level int) ICompressor {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		panic(err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		panic(err)
	}
	return &zstdCompressorImpl{enc: enc, dec: dec}
}

// zstdCompressorImpl implements the ICompressor interface using zstd block
// compression. Encoder and decoder are created once and shared, EncodeAll
// and DecodeAll are safe for concurrent use.
type zstdCompressorImpl struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// --------------------------------------------------------------------------
// Interface Methods (docu see compress.ICompressor)
// --------------------------------------------------------------------------

func (z *zstdCompressorImpl) Name() string {
	return "zstd"
}

func (z *zstdCompressorImpl) Compress(data []byte) ([]byte, error) {
	return z.enc.EncodeAll(data, nil), nil
}

func (z *zstdCompressorImpl) Decompress(data []byte) ([]byte, error) {
	return z.dec.DecodeAll(data, nil)
}
