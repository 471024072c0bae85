package blob

import (
	"fmt"

	"github.com/arloliu/upsetdata/compress"
	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/format"
	"github.com/arloliu/upsetdata/section"
)

// AssignmentEncoderConfig holds the wire-level settings of an
// AssignmentEncoder: byte order and the compression applied to the masks
// payload. It is populated by the functional options passed to
// NewAssignmentEncoder.
type AssignmentEncoderConfig struct {
	header    *section.AssignmentHeader
	engine    endian.EndianEngine
	maskCodec compress.Codec
}

// NewAssignmentEncoderConfig creates a configuration with default settings:
// little-endian byte order and Zstandard-compressed masks.
func NewAssignmentEncoderConfig() *AssignmentEncoderConfig {
	header := section.NewAssignmentHeader()

	return &AssignmentEncoderConfig{
		header: header,
		engine: header.Flag.GetEndianEngine(),
	}
}

// Header returns the header template the encoder stamps into each blob.
func (c *AssignmentEncoderConfig) Header() *section.AssignmentHeader {
	return c.header
}

// setMaskCompression sets the compression type for the masks payload.
func (c *AssignmentEncoderConfig) setMaskCompression(compression format.CompressionType) error {
	if !compression.IsValid() {
		return fmt.Errorf("invalid mask compression type: %d", compression)
	}

	c.header.Flag.SetMaskCompression(compression)

	return nil
}

// setValueCompression rejects the option: assignment blobs have no values
// payload to compress.
func (c *AssignmentEncoderConfig) setValueCompression(format.CompressionType) error {
	return fmt.Errorf("%w: assignment blobs carry no values payload", errs.ErrInvalidCompression)
}

// setEndianness sets the byte order for all multi-byte fields and payloads.
func (c *AssignmentEncoderConfig) setEndianness(e endianness) {
	if e == bigEndianOpt {
		c.header.Flag.WithBigEndian()
	} else {
		c.header.Flag.WithLittleEndian()
	}

	c.engine = c.header.Flag.GetEndianEngine()
}

// setCodecs resolves the compression codec selected in the header flag.
// It must be called after all options are applied.
func (c *AssignmentEncoderConfig) setCodecs() error {
	maskCodec, err := compress.CreateCodec(c.header.Flag.MaskCompression(), "mask")
	if err != nil {
		return err
	}

	c.maskCodec = maskCodec

	return nil
}
