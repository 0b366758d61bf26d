package codec

import (
	"bytes"
	"reflect"
	"testing"
	"time"
)

// testCodecs is a map of codec name to factory function
var testCodecs = map[string]func() ICodec{
	"Msgpack": NewMsgpackCodec,
	"CBOR":    NewCBORCodec,
	"JSON":    NewJSONCodec,
}

// testRecord mirrors the shape of the stored entry record: typed timestamps
// plus schema-less value and metadata fields.
type testRecord struct {
	Value     interface{} `json:"value" msgpack:"value" cbor:"value"`
	Metadata  interface{} `json:"metadata" msgpack:"metadata" cbor:"metadata"`
	CreatedAt time.Time   `json:"created_at" msgpack:"created_at" cbor:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" msgpack:"updated_at" cbor:"updated_at"`
}

// TestCodecNames tests that every codec reports its canonical name
func TestCodecNames(t *testing.T) {
	want := map[string]string{"Msgpack": "msgpack", "CBOR": "cbor", "JSON": "json"}
	for name, factory := range testCodecs {
		if got := factory().Name(); got != want[name] {
			t.Errorf("%s.Name() = %q, want %q", name, got, want[name])
		}
	}
}

// TestRoundTripCommonValues tests values that all codecs must round-trip
// identically when decoded into an interface{} target
func TestRoundTripCommonValues(t *testing.T) {
	values := []interface{}{
		"a plain string",
		"",
		true,
		false,
		nil,
		map[string]interface{}{"name": "alice", "tags": []interface{}{"a", "b"}},
		[]interface{}{"x", "y", "z"},
	}

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			for i, v := range values {
				data, err := c.Encode(v)
				if err != nil {
					t.Errorf("Failed to encode value %d (%v): %v", i, v, err)
					continue
				}

				var result interface{}
				if err := c.Decode(data, &result); err != nil {
					t.Errorf("Failed to decode value %d (%v): %v", i, v, err)
					continue
				}

				if !reflect.DeepEqual(v, result) {
					t.Errorf("Value %d doesn't match after round trip:\nOriginal: %#v\nResult: %#v",
						i, v, result)
				}
			}
		})
	}
}

// TestRoundTripTypedRecord tests that a typed record with timestamps decodes
// back field by field with every codec
func TestRoundTripTypedRecord(t *testing.T) {
	created := time.Date(2025, 4, 1, 10, 30, 0, 123456000, time.UTC)
	updated := created.Add(90 * time.Second)

	rec := testRecord{
		Value:     "hello",
		Metadata:  map[string]interface{}{"source": "import"},
		CreatedAt: created,
		UpdatedAt: updated,
	}

	for name, factory := range testCodecs {
		t.Run(name, func(t *testing.T) {
			c := factory()

			data, err := c.Encode(rec)
			if err != nil {
				t.Fatalf("Failed to encode record: %v", err)
			}

			var result testRecord
			if err := c.Decode(data, &result); err != nil {
				t.Fatalf("Failed to decode record: %v", err)
			}

			if result.Value != rec.Value {
				t.Errorf("Value mismatch: expected %v, got %v", rec.Value, result.Value)
			}
			if !reflect.DeepEqual(result.Metadata, rec.Metadata) {
				t.Errorf("Metadata mismatch: expected %#v, got %#v", rec.Metadata, result.Metadata)
			}
			if !result.CreatedAt.Equal(rec.CreatedAt) {
				t.Errorf("CreatedAt mismatch: expected %v, got %v", rec.CreatedAt, result.CreatedAt)
			}
			if !result.UpdatedAt.Equal(rec.UpdatedAt) {
				t.Errorf("UpdatedAt mismatch: expected %v, got %v", rec.UpdatedAt, result.UpdatedAt)
			}
		})
	}
}

// TestMsgpackTypeFidelity tests that the msgpack codec preserves integer,
// byte slice and time values through an interface{} target
func TestMsgpackTypeFidelity(t *testing.T) {
	c := NewMsgpackCodec()

	testCases := []struct {
		name  string
		value interface{}
		want  interface{}
	}{
		{"Small int", 42, int64(42)},
		{"Negative int", -7, int64(-7)},
		{"Large int64", int64(1) << 40, int64(1) << 40},
		{"Float", 3.25, 3.25},
		{"Bytes", []byte{0x00, 0x01, 0xFF}, []byte{0x00, 0x01, 0xFF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := c.Encode(tc.value)
			if err != nil {
				t.Fatalf("Failed to encode: %v", err)
			}

			var result interface{}
			if err := c.Decode(data, &result); err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}

			if !reflect.DeepEqual(result, tc.want) {
				t.Errorf("got %#v (%T), want %#v (%T)", result, result, tc.want, tc.want)
			}
		})
	}

	// time.Time survives via the msgpack time extension
	now := time.Now().UTC()
	data, err := c.Encode(now)
	if err != nil {
		t.Fatalf("Failed to encode time: %v", err)
	}
	var result interface{}
	if err := c.Decode(data, &result); err != nil {
		t.Fatalf("Failed to decode time: %v", err)
	}
	ts, ok := result.(time.Time)
	if !ok {
		t.Fatalf("time did not round trip, got %T", result)
	}
	if !ts.Equal(now) {
		t.Errorf("time mismatch: expected %v, got %v", now, ts)
	}
}

// TestCBORTypeFidelity tests the configured decode modes of the CBOR codec
func TestCBORTypeFidelity(t *testing.T) {
	c := NewCBORCodec()

	// Non-negative integers must come back signed
	data, err := c.Encode(42)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	var result interface{}
	if err := c.Decode(data, &result); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if got, ok := result.(int64); !ok || got != 42 {
		t.Errorf("got %#v (%T), want int64(42)", result, result)
	}

	// Maps must come back as map[string]interface{}
	data, err = c.Encode(map[string]interface{}{"k": "v"})
	if err != nil {
		t.Fatalf("Failed to encode map: %v", err)
	}
	result = nil
	if err := c.Decode(data, &result); err != nil {
		t.Fatalf("Failed to decode map: %v", err)
	}
	if _, ok := result.(map[string]interface{}); !ok {
		t.Errorf("map decoded as %T, want map[string]interface{}", result)
	}

	// Byte slices survive
	data, err = c.Encode([]byte{1, 2, 3})
	if err != nil {
		t.Fatalf("Failed to encode bytes: %v", err)
	}
	result = nil
	if err := c.Decode(data, &result); err != nil {
		t.Fatalf("Failed to decode bytes: %v", err)
	}
	if !bytes.Equal(result.([]byte), []byte{1, 2, 3}) {
		t.Errorf("bytes mismatch: got %#v", result)
	}
}

// TestJSONLossiness documents the known JSON conversions so nobody is
// surprised by them: numbers decode as float64 and []byte as base64 text
func TestJSONLossiness(t *testing.T) {
	c := NewJSONCodec()

	data, err := c.Encode(42)
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	var result interface{}
	if err := c.Decode(data, &result); err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if got, ok := result.(float64); !ok || got != 42 {
		t.Errorf("got %#v (%T), want float64(42)", result, result)
	}

	data, err = c.Encode([]byte("raw"))
	if err != nil {
		t.Fatalf("Failed to encode bytes: %v", err)
	}
	result = nil
	if err := c.Decode(data, &result); err != nil {
		t.Fatalf("Failed to decode bytes: %v", err)
	}
	if _, ok := result.(string); !ok {
		t.Errorf("bytes decoded as %T, want base64 string", result)
	}
}

// TestInvalidData tests how the codecs handle corrupt or truncated input
func TestInvalidData(t *testing.T) {
	testCases := []struct {
		codec string
		data  []byte
	}{
		{"Msgpack", []byte{}},
		{"Msgpack", []byte{0xc1}}, // reserved, never valid
		{"CBOR", []byte{}},
		{"CBOR", []byte{0xff}}, // lone break code
		{"JSON", []byte{}},
		{"JSON", []byte(`{"unterminated`)},
	}

	for _, tc := range testCases {
		t.Run(tc.codec, func(t *testing.T) {
			c := testCodecs[tc.codec]()
			var v interface{}
			if err := c.Decode(tc.data, &v); err == nil {
				t.Errorf("Expected error decoding %v but got none", tc.data)
			}
		})
	}
}
