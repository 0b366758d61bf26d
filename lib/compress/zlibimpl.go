package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// NewZlibCompressor creates a new compressor using the zlib format. This is
// the default compressor of the module. The level ranges from
// zlib.HuffmanOnly (-2) to zlib.BestCompression (9); level 6 is the usual
// speed/ratio sweet spot and the module default. The function panics on an
// out-of-range level, callers that take the level from configuration must
// validate it first.
func NewZlibCompressor(level int) ICompressor {
	if level < zlib.HuffmanOnly || level > zlib.BestCompression {
		panic(fmt.Sprintf("invalid zlib compression level: %d. must be between %d and %d",
			level, zlib.HuffmanOnly, zlib.BestCompression))
	}
	return &zlibCompressorImpl{level: level}
}

// zlibCompressorImpl implements the ICompressor interface using zlib streams
type zlibCompressorImpl struct {
	level int
}

// --------------------------------------------------------------------------
// Interface Methods (docu see compress.ICompressor)
// --------------------------------------------------------------------------

func (z *zlibCompressorImpl) Name() string {
	return "zlib"
}

func (z *zlibCompressorImpl) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, z.level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (z *zlibCompressorImpl) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	return io.ReadAll(r)
}
