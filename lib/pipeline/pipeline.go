package pipeline

import (
	"fmt"

	"github.com/pdictdb/pdict/lib/codec"
	"github.com/pdictdb/pdict/lib/compress"
	"github.com/pdictdb/pdict/lib/errs"
)

// FormatVersion is the first byte of every stored blob. It allows the blob
// layout to evolve without making old files unreadable. Readers reject blobs
// with an unknown version instead of guessing.
const FormatVersion byte = 0x01

// --------------------------------------------------------------------------
// Pipeline
// --------------------------------------------------------------------------

// Pipeline composes a codec and a compressor into the blob format of the
// dictionary: Pack produces FormatVersion ++ compress(encode(v)) and Unpack
// reverses it. The key parameter of both methods is only used to enrich
// errors, it does not influence the produced bytes.
//
// Error mapping: failures while producing bytes are serialization errors.
// On the read path a failed decompression (or a bad header) means the stored
// blob is damaged and surfaces as a corruption error, while a failed decode
// of successfully decompressed bytes is a serialization error.
type Pipeline struct {
	codec      codec.ICodec
	compressor compress.ICompressor
}

// New creates a Pipeline from a codec and a compressor. Both must be
// non-nil, the dictionary options layer is responsible for defaults.
func New(c codec.ICodec, comp compress.ICompressor) *Pipeline {
	if c == nil || comp == nil {
		panic("pipeline: codec and compressor must be non-nil")
	}
	return &Pipeline{codec: c, compressor: comp}
}

// CodecName returns the name of the configured codec (for logs and metrics).
func (p *Pipeline) CodecName() string {
	return p.codec.Name()
}

// CompressorName returns the name of the configured compressor.
func (p *Pipeline) CompressorName() string {
	return p.compressor.Name()
}

// Pack turns a value into a stored blob.
func (p *Pipeline) Pack(key string, v interface{}) ([]byte, error) {
	encoded, err := p.codec.Encode(v)
	if err != nil {
		return nil, errs.Wrap(errs.KindSerialization, "pipeline.Pack", key, err)
	}
	compressed, err := p.compressor.Compress(encoded)
	if err != nil {
		return nil, errs.Wrap(errs.KindSerialization, "pipeline.Pack", key, err)
	}

	blob := make([]byte, 0, len(compressed)+1)
	blob = append(blob, FormatVersion)
	blob = append(blob, compressed...)
	return blob, nil
}

// Unpack turns a stored blob back into a value. The blob must have been
// produced by a Pipeline with the same codec and compressor.
func (p *Pipeline) Unpack(key string, blob []byte, v interface{}) error {
	if len(blob) == 0 {
		return errs.Wrap(errs.KindCorruption, "pipeline.Unpack", key, fmt.Errorf("empty blob"))
	}
	if blob[0] != FormatVersion {
		return errs.Wrap(errs.KindCorruption, "pipeline.Unpack", key,
			fmt.Errorf("unknown blob format version 0x%02x", blob[0]))
	}

	encoded, err := p.compressor.Decompress(blob[1:])
	if err != nil {
		return errs.Wrap(errs.KindCorruption, "pipeline.Unpack", key, err)
	}
	if err := p.codec.Decode(encoded, v); err != nil {
		return errs.Wrap(errs.KindSerialization, "pipeline.Unpack", key, err)
	}
	return nil
}
