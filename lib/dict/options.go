package dict

import (
	"os"
	"time"

	"github.com/pdictdb/pdict/lib/codec"
	"github.com/pdictdb/pdict/lib/compress"
	"github.com/pdictdb/pdict/lib/engine"
	"github.com/pdictdb/pdict/lib/logger"
)

const (
	// defaultCompressLevel is the zlib level used when none is configured.
	defaultCompressLevel = 6
	// defaultBusyTimeout is how long the sqlite engine waits on a locked
	// database file before giving up.
	defaultBusyTimeout = 10 * time.Second
)

// --------------------------------------------------------------------------
// Options
// --------------------------------------------------------------------------

// Options configures a dictionary. Start from DefaultOptions and adjust, a
// zero-valued Options disables metrics and is otherwise filled with the same
// defaults.
type Options struct {
	// Codec encodes entries to bytes before compression (default: msgpack).
	Codec codec.ICodec

	// Compressor shrinks encoded entries before they hit the engine
	// (default: zlib at CompressLevel).
	Compressor compress.ICompressor

	// CompressLevel is the level for the default zlib compressor, 0 selects
	// level 6. It is ignored when Compressor is set explicitly.
	CompressLevel int

	// Isolation selects the concurrency discipline for engine access
	// (default: IsolationSerialized).
	Isolation Isolation

	// BusyTimeout is how long the sqlite engine waits on the database file
	// lock (default: 10s). It is ignored when Engine is set.
	BusyTimeout time.Duration

	// Engine replaces the sqlite engine that New would otherwise construct
	// from its path argument. The dictionary takes ownership and closes the
	// engine on Close. Dictionaries with an injected engine do not support
	// Copy.
	Engine engine.IEngine

	// Logger receives operational messages (default: a WARNING level logger
	// writing to stdout).
	Logger logger.ILogger

	// MetricsEnabled turns the per-dictionary usage counters on.
	MetricsEnabled bool
}

// DefaultOptions returns the options New falls back to when nil options are
// given: msgpack encoding, zlib compression at level 6, serialized engine
// access, a 10s sqlite busy timeout and enabled metrics.
func DefaultOptions() *Options {
	return &Options{
		CompressLevel:  defaultCompressLevel,
		Isolation:      IsolationSerialized,
		BusyTimeout:    defaultBusyTimeout,
		MetricsEnabled: true,
	}
}

// normalized returns a copy of o with every unset field replaced by its
// default, so the rest of the package never has to deal with nil fields.
// A nil receiver yields DefaultOptions.
func (o *Options) normalized() *Options {
	n := DefaultOptions()
	if o != nil {
		*n = *o
	}
	if n.CompressLevel == 0 {
		n.CompressLevel = defaultCompressLevel
	}
	if n.BusyTimeout <= 0 {
		n.BusyTimeout = defaultBusyTimeout
	}
	if n.Codec == nil {
		n.Codec = codec.NewMsgpackCodec()
	}
	if n.Compressor == nil {
		n.Compressor = compress.NewZlibCompressor(n.CompressLevel)
	}
	if n.Logger == nil {
		n.Logger = logger.NewLogger("dict", logger.WARNING, os.Stdout)
	}
	return n
}
