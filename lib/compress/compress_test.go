package compress

import (
	"bytes"
	"strings"
	"testing"
)

// testCompressors is a map of compressor name to factory function
var testCompressors = map[string]func() ICompressor{
	"Zlib":   func() ICompressor { return NewZlibCompressor(6) },
	"Zstd":   func() ICompressor { return NewZstdCompressor(0) },
	"Snappy": NewSnappyCompressor,
	"None":   NewNoneCompressor,
}

// testPayloads returns byte arrays with different characteristics
func testPayloads() map[string][]byte {
	ramp := make([]byte, 1024)
	for i := range ramp {
		ramp[i] = byte(i)
	}
	noisy := make([]byte, 2048)
	for i := range noisy {
		noisy[i] = byte(i*31 + i*i*7)
	}

	return map[string][]byte{
		"Empty":       {},
		"OneByte":     {0x42},
		"ShortText":   []byte("hello world"),
		"Repetitive":  bytes.Repeat([]byte("abcd"), 4096),
		"LongText":    []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 200)),
		"BinaryRamp":  ramp,
		"AllZeros":    make([]byte, 8192),
		"HighEntropy": noisy,
	}
}

// TestCompressorNames tests that every compressor reports its canonical name
func TestCompressorNames(t *testing.T) {
	want := map[string]string{"Zlib": "zlib", "Zstd": "zstd", "Snappy": "snappy", "None": "none"}
	for name, factory := range testCompressors {
		if got := factory().Name(); got != want[name] {
			t.Errorf("%s.Name() = %q, want %q", name, got, want[name])
		}
	}
}

// TestRoundTrip tests that every compressor restores the exact input bytes
func TestRoundTrip(t *testing.T) {
	payloads := testPayloads()

	for name, factory := range testCompressors {
		t.Run(name, func(t *testing.T) {
			c := factory()

			for payloadName, payload := range payloads {
				compressed, err := c.Compress(payload)
				if err != nil {
					t.Errorf("Failed to compress %s: %v", payloadName, err)
					continue
				}

				restored, err := c.Decompress(compressed)
				if err != nil {
					t.Errorf("Failed to decompress %s: %v", payloadName, err)
					continue
				}

				if !bytes.Equal(payload, restored) {
					t.Errorf("Payload %s doesn't match after round trip: %d bytes in, %d bytes out",
						payloadName, len(payload), len(restored))
				}
			}
		})
	}
}

// TestCompressionReducesSize tests that compressible input actually shrinks
func TestCompressionReducesSize(t *testing.T) {
	payload := bytes.Repeat([]byte("abcd"), 4096)

	for _, name := range []string{"Zlib", "Zstd", "Snappy"} {
		t.Run(name, func(t *testing.T) {
			c := testCompressors[name]()
			compressed, err := c.Compress(payload)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			if len(compressed) >= len(payload) {
				t.Errorf("compressed size %d >= input size %d", len(compressed), len(payload))
			}
		})
	}
}

// TestZlibLevels tests that all valid levels round-trip and that higher
// levels do not produce larger output on repetitive input
func TestZlibLevels(t *testing.T) {
	payload := bytes.Repeat([]byte("pdict stores entries as compressed encoded records "), 512)

	var previous int
	for level := 1; level <= 9; level++ {
		c := NewZlibCompressor(level)
		compressed, err := c.Compress(payload)
		if err != nil {
			t.Fatalf("level %d: failed to compress: %v", level, err)
		}
		restored, err := c.Decompress(compressed)
		if err != nil {
			t.Fatalf("level %d: failed to decompress: %v", level, err)
		}
		if !bytes.Equal(payload, restored) {
			t.Fatalf("level %d: round trip mismatch", level)
		}
		if level > 1 && len(compressed) > previous*2 {
			t.Errorf("level %d output (%d bytes) much larger than level %d (%d bytes)",
				level, len(compressed), level-1, previous)
		}
		previous = len(compressed)
	}
}

// TestZlibInvalidLevel tests that out-of-range levels panic at construction
func TestZlibInvalidLevel(t *testing.T) {
	for _, level := range []int{-3, 10, 100} {
		func() {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("NewZlibCompressor(%d) did not panic", level)
				}
			}()
			NewZlibCompressor(level)
		}()
	}
}

// TestDecompressGarbage tests that damaged input surfaces as an error
// instead of silently returning wrong bytes
func TestDecompressGarbage(t *testing.T) {
	garbage := []byte{0x03, 0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01}

	for _, name := range []string{"Zlib", "Zstd", "Snappy"} {
		t.Run(name, func(t *testing.T) {
			c := testCompressors[name]()
			if _, err := c.Decompress(garbage); err == nil {
				t.Errorf("Expected error decompressing garbage but got none")
			}
		})
	}
}

// TestTruncatedStream tests that cutting a valid stream short is detected
func TestTruncatedStream(t *testing.T) {
	payload := bytes.Repeat([]byte("0123456789"), 1000)

	for _, name := range []string{"Zlib", "Zstd"} {
		t.Run(name, func(t *testing.T) {
			c := testCompressors[name]()
			compressed, err := c.Compress(payload)
			if err != nil {
				t.Fatalf("Failed to compress: %v", err)
			}
			truncated := compressed[:len(compressed)/2]
			if _, err := c.Decompress(truncated); err == nil {
				t.Errorf("Expected error decompressing truncated stream but got none")
			}
		})
	}
}
