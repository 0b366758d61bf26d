package codec

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// NewMsgpackCodec creates a new codec using the MessagePack format. This is
// the default codec of the module: compact, fast and able to round-trip all
// value types the dictionary accepts (including []byte and time.Time).
func NewMsgpackCodec() ICodec {
	return &msgpackCodecImpl{}
}

// msgpackCodecImpl implements the ICodec interface using MessagePack encoding
type msgpackCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (c msgpackCodecImpl) Name() string {
	return "msgpack"
}

func (c msgpackCodecImpl) Encode(v interface{}) ([]byte, error) {
	return msgpack.Marshal(v)
}

func (c msgpackCodecImpl) Decode(b []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	// Loose decoding normalizes interface{} targets to int64, uint64,
	// float64 and friends instead of size-dependent types, so values read
	// back the same regardless of how small they were encoded.
	dec.UseLooseInterfaceDecoding(true)
	return dec.Decode(v)
}
