package codec

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// NewCBORCodec creates a new codec using the CBOR format (RFC 8949). CBOR
// is a good choice when stored blobs may be consumed by non-Go tooling.
func NewCBORCodec() ICodec {
	em, err := cbor.EncOptions{Time: cbor.TimeRFC3339Nano}.EncMode()
	if err != nil {
		panic(err)
	}
	dm, err := cbor.DecOptions{
		// Decode maps into map[string]interface{} so values look the same
		// as with the other codecs.
		DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
		// Decode non-negative integers as int64 where they fit.
		IntDec: cbor.IntDecConvertSigned,
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return &cborCodecImpl{enc: em, dec: dm}
}

// cborCodecImpl implements the ICodec interface using CBOR encoding
type cborCodecImpl struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// --------------------------------------------------------------------------
// Interface Methods (docu see codec.ICodec)
// --------------------------------------------------------------------------

func (c *cborCodecImpl) Name() string {
	return "cbor"
}

func (c *cborCodecImpl) Encode(v interface{}) ([]byte, error) {
	return c.enc.Marshal(v)
}

func (c *cborCodecImpl) Decode(b []byte, v interface{}) error {
	return c.dec.Unmarshal(b, v)
}
