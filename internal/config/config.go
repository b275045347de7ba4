// Package config loads ende.toml, the optional defaults file for the CLI.
package config

import (
	"encoding/binary"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/FocuswithJustin/ende/core/codec"
	"github.com/FocuswithJustin/ende/core/errors"
	"github.com/FocuswithJustin/ende/internal/logging"
)

// DefaultPath is the file read when no --config flag is given.
const DefaultPath = "ende.toml"

// Output formats.
const (
	FormatDump = "dump"
	FormatRaw  = "raw"
	FormatList = "list"
)

// Byte orders for 16-bit streams.
const (
	OrderBig    = "big"
	OrderLittle = "little"
)

// Config is the contents of ende.toml. Command flags override it.
type Config struct {
	Codec  CodecConfig  `toml:"codec"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
}

// CodecConfig is the [codec] table: the default encoding and how 16-bit
// streams are serialized.
type CodecConfig struct {
	Encoding  string `toml:"encoding"`
	ByteOrder string `toml:"byte_order"`
	BOM       bool   `toml:"bom"`
}

// OutputConfig is the [output] table.
type OutputConfig struct {
	Binary bool   `toml:"binary"`
	Format string `toml:"format"`
}

// LogConfig is the [log] table, fed to logging.InitLogger.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Codec: CodecConfig{
			Encoding:  "utf-8",
			ByteOrder: OrderBig,
		},
		Output: OutputConfig{
			Format: FormatDump,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, errors.NewIO("read", path, err)
	}
	return Parse(path, data)
}

// Parse decodes TOML over the defaults and validates the result. name is
// used in error messages.
func Parse(name string, data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, errors.NewParse("config", name, err.Error())
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.NewValidation("key", keys[0], "unknown configuration key")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every enumerated value.
func (c *Config) Validate() error {
	if _, err := codec.ParseEncoding(c.Codec.Encoding); err != nil {
		return errors.NewValidation("codec.encoding", c.Codec.Encoding, "unknown encoding")
	}
	switch strings.ToLower(c.Codec.ByteOrder) {
	case OrderBig, OrderLittle:
	default:
		return errors.NewValidation("codec.byte_order", c.Codec.ByteOrder, "must be big or little")
	}
	switch c.Output.Format {
	case FormatDump, FormatRaw, FormatList:
	default:
		return errors.NewValidation("output.format", c.Output.Format, "must be dump, raw or list")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return errors.NewValidation("log.level", c.Log.Level, "must be debug, info, warn or error")
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return errors.NewValidation("log.format", c.Log.Format, "must be text or json")
	}
	return nil
}

// Encoding returns the configured default encoding.
func (c *Config) Encoding() codec.Encoding {
	enc, err := codec.ParseEncoding(c.Codec.Encoding)
	if err != nil {
		return codec.UTF8
	}
	return enc
}

// ByteOrder returns the configured byte order for 16-bit streams.
func (c *Config) ByteOrder() binary.ByteOrder {
	return ParseByteOrder(c.Codec.ByteOrder)
}

// ParseByteOrder maps "little" to binary.LittleEndian and anything else to
// binary.BigEndian.
func ParseByteOrder(s string) binary.ByteOrder {
	if strings.EqualFold(s, OrderLittle) {
		return binary.LittleEndian
	}
	return binary.BigEndian
}
