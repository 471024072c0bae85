package blob

import (
	"fmt"

	"github.com/arloliu/upsetdata/compress"
	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/format"
	"github.com/arloliu/upsetdata/section"
)

// CountsEncoderConfig holds the wire-level settings of a CountsEncoder: byte
// order and the compression applied to each payload. It is populated by the
// functional options passed to NewCountsEncoder.
type CountsEncoderConfig struct {
	header     *section.CountsHeader
	engine     endian.EndianEngine
	maskCodec  compress.Codec
	valueCodec compress.Codec
}

// NewCountsEncoderConfig creates a configuration with default settings:
// little-endian byte order, uncompressed masks and Zstandard-compressed
// values.
func NewCountsEncoderConfig() *CountsEncoderConfig {
	header := section.NewCountsHeader()

	return &CountsEncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}
}

// Header returns the header template the encoder stamps into each blob.
func (c *CountsEncoderConfig) Header() *section.CountsHeader {
	return c.header
}

// setMaskCompression sets the compression type for the masks payload.
func (c *CountsEncoderConfig) setMaskCompression(compression format.CompressionType) error {
	if !compression.IsValid() {
		return fmt.Errorf("invalid mask compression type: %d", compression)
	}

	c.header.Flag.SetMaskCompression(compression)

	return nil
}

// setValueCompression sets the compression type for the values payload.
func (c *CountsEncoderConfig) setValueCompression(compression format.CompressionType) error {
	if !compression.IsValid() {
		return fmt.Errorf("invalid value compression type: %d", compression)
	}

	c.header.Flag.SetValueCompression(compression)

	return nil
}

// setEndianness sets the byte order for all multi-byte fields and payloads.
func (c *CountsEncoderConfig) setEndianness(e endianness) {
	if e == bigEndianOpt {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

// setCodecs resolves the compression codecs selected in the header flag.
// It must be called after all options are applied.
func (c *CountsEncoderConfig) setCodecs() error {
	maskCodec, err := compress.CreateCodec(c.header.Flag.MaskCompression(), "mask")
	if err != nil {
		return err
	}

	valueCodec, err := compress.CreateCodec(c.header.Flag.ValueCompression(), "value")
	if err != nil {
		return err
	}

	c.maskCodec = maskCodec
	c.valueCodec = valueCodec

	return nil
}
