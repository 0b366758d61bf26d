package codec

// ICodec is the interface for all value codecs. A codec turns an arbitrary
// Go value into a self-describing byte representation and back. Codecs do
// not compress, see the compress package for that.
type ICodec interface {
	// Name returns the canonical name of the codec (e.g. "msgpack").
	// The name is used in configuration and metrics labels.
	Name() string
	// Encode encodes a value into a byte array.
	// It returns the encoded byte array and an error if any.
	Encode(v interface{}) ([]byte, error)
	// Decode decodes a byte array into the value pointed to by v.
	// It takes a byte array and a pointer as parameters
	// and returns an error if any.
	Decode(b []byte, v interface{}) error
}
