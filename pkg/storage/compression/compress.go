package compression

import (
	"bytes"

	"github.com/klauspost/compress/zstd"
)

// PrefixLength is a length of compression marker in compressed data.
const PrefixLength = 4

// Config represents common compression-related configuration.
type Config struct {
	Enabled bool

	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// zstdFrameMagic contains first 4 bytes of any compressed object
// https://github.com/klauspost/compress/blob/master/zstd/framedec.go#L58 .
var zstdFrameMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Init initializes compression routines.
func (c *Config) Init() error {
	var err error

	if c.Enabled {
		c.encoder, err = zstd.NewWriter(nil)
		if err != nil {
			return err
		}
	}

	c.decoder, err = zstd.NewReader(nil)
	if err != nil {
		return err
	}

	return nil
}

// IsCompressed checks whether given data is compressed.
func (c *Config) IsCompressed(data []byte) bool {
	return len(data) >= PrefixLength && bytes.Equal(data[:PrefixLength], zstdFrameMagic)
}

// Decompress decompresses data if it starts with the compression marker
// and returns it unchanged otherwise, so stores written with compression
// disabled stay readable.
func (c *Config) Decompress(data []byte) ([]byte, error) {
	if !c.IsCompressed(data) {
		return data, nil
	}

	return c.decoder.DecodeAll(data, nil)
}

// Compress compresses data if compression is enabled.
func (c *Config) Compress(data []byte) []byte {
	if !c.Enabled {
		return data
	}

	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)))
}
