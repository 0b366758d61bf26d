package dict

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdictdb/pdict/lib/codec"
	"github.com/pdictdb/pdict/lib/compress"
	"github.com/pdictdb/pdict/lib/logger"
)

// --------------------------------------------------------------------------
// Environment Configuration
// --------------------------------------------------------------------------

// InitEnvConfig initializes configuration from environment variables. It is
// called by OptionsFromEnv and only needs to be invoked directly when the
// Get* helpers below are used on their own.
func InitEnvConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("pdict")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetCodec creates a codec based on configuration (PDICT_CODEC). An unset
// variable selects msgpack.
func GetCodec() (codec.ICodec, error) {
	switch viper.GetString("codec") {
	case "", "msgpack":
		return codec.NewMsgpackCodec(), nil
	case "cbor":
		return codec.NewCBORCodec(), nil
	case "json":
		return codec.NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("invalid codec %s", viper.GetString("codec"))
	}
}

// GetCompressor creates a compressor based on configuration
// (PDICT_COMPRESSION and PDICT_COMPRESS_LEVEL). Unset variables select zlib
// at level 6.
func GetCompressor() (compress.ICompressor, error) {
	level := defaultCompressLevel
	if s := viper.GetString("compress-level"); s != "" {
		l, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("invalid compress level %s", s)
		}
		level = l
	}

	switch viper.GetString("compression") {
	case "", "zlib":
		// zlib levels range from HuffmanOnly (-2) to BestCompression (9),
		// NewZlibCompressor panics outside of that.
		if level < -2 || level > 9 {
			return nil, fmt.Errorf("invalid compress level %d", level)
		}
		return compress.NewZlibCompressor(level), nil
	case "zstd":
		return compress.NewZstdCompressor(level), nil
	case "snappy":
		return compress.NewSnappyCompressor(), nil
	case "none":
		return compress.NewNoneCompressor(), nil
	default:
		return nil, fmt.Errorf("invalid compression %s", viper.GetString("compression"))
	}
}

// GetIsolation reads the isolation mode from configuration (PDICT_ISOLATION).
// An unset variable selects IsolationSerialized.
func GetIsolation() (Isolation, error) {
	switch viper.GetString("isolation") {
	case "", "serialized":
		return IsolationSerialized, nil
	case "engine-native":
		return IsolationEngineNative, nil
	default:
		return IsolationSerialized, fmt.Errorf("invalid isolation %s", viper.GetString("isolation"))
	}
}

// OptionsFromEnv builds Options from environment variables and .env files.
// Unset variables keep their defaults (see DefaultOptions), invalid values
// are an error. The recognized variables are:
//
//	PDICT_CODEC          msgpack | cbor | json
//	PDICT_COMPRESSION    zlib | zstd | snappy | none
//	PDICT_COMPRESS_LEVEL compression level for zlib and zstd
//	PDICT_ISOLATION      serialized | engine-native
//	PDICT_BUSY_TIMEOUT   sqlite lock wait as a Go duration, e.g. "30s"
//	PDICT_LOG_LEVEL      debug | info | warn | error | critical
//	PDICT_METRICS        true | false
func OptionsFromEnv() (*Options, error) {
	InitEnvConfig()
	opts := DefaultOptions()

	c, err := GetCodec()
	if err != nil {
		return nil, err
	}
	opts.Codec = c

	comp, err := GetCompressor()
	if err != nil {
		return nil, err
	}
	opts.Compressor = comp

	iso, err := GetIsolation()
	if err != nil {
		return nil, err
	}
	opts.Isolation = iso

	if s := viper.GetString("busy-timeout"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("invalid busy timeout %s", s)
		}
		opts.BusyTimeout = d
	}

	if s := viper.GetString("log-level"); s != "" {
		level, err := logger.ParseLevel(s)
		if err != nil {
			return nil, err
		}
		opts.Logger = logger.NewLogger("dict", level, os.Stdout)
	}

	if s := viper.GetString("metrics"); s != "" {
		enabled, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid metrics flag %s", s)
		}
		opts.MetricsEnabled = enabled
	}

	return opts, nil
}
