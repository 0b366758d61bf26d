package codec

import (
	"encoding/json"
)

// NewJSONCodec creates a new codec using json encoding. JSON blobs are
// human-readable which makes them handy for debugging, but the format does
// not distinguish integer from float (numbers decode as float64 into
// interface{} targets) and []byte values come back as base64 strings. Use
// msgpack or cbor when type fidelity matters.
func NewJSONCodec() ICodec {
	return &jsonCodecImpl{}
}

// jsonCodecImpl implements the ICodec interface using json encoding
type jsonCodecImpl struct {
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (c jsonCodecImpl) Name() string {
	return "json"
}

func (c jsonCodecImpl) Encode(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

func (c jsonCodecImpl) Decode(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}
