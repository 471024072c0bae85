package blob

import (
	"fmt"

	"github.com/arloliu/upsetdata/endian"
	"github.com/arloliu/upsetdata/errs"
	"github.com/arloliu/upsetdata/format"
	"github.com/arloliu/upsetdata/internal/hash"
	"github.com/arloliu/upsetdata/internal/options"
	"github.com/arloliu/upsetdata/section"
)

// endianness selects the byte order stamped into a blob header.
type endianness uint8

const (
	littleEndianOpt endianness = iota
	bigEndianOpt
)

// encoderConfig is the configuration surface shared by counts and assignment
// encoders, so a single option set serves both constructors.
type encoderConfig interface {
	setMaskCompression(compression format.CompressionType) error
	setValueCompression(compression format.CompressionType) error
	setEndianness(e endianness)
}

// EncoderOption configures a CountsEncoder or an AssignmentEncoder.
type EncoderOption = options.Option[encoderConfig]

// WithMaskCompression selects the compression applied to the masks payload.
//
// Counts blobs default to no mask compression because they hold one mask per
// observed combination, a payload usually too small to benefit. Assignment
// blobs default to Zstandard because they hold one mask per sample row.
//
// Parameters:
//   - compression: Compression type (format.CompressionNone, format.CompressionZstd,
//     format.CompressionS2, format.CompressionLZ4)
//
// Returns:
//   - EncoderOption: Option that fails if the compression type is invalid
func WithMaskCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(cfg encoderConfig) error {
		return cfg.setMaskCompression(compression)
	})
}

// WithValueCompression selects the compression applied to the values payload
// of a counts blob. The default is Zstandard.
//
// Assignment blobs carry no values payload; passing this option to
// NewAssignmentEncoder returns errs.ErrInvalidCompression.
//
// Parameters:
//   - compression: Compression type (format.CompressionNone, format.CompressionZstd,
//     format.CompressionS2, format.CompressionLZ4)
//
// Returns:
//   - EncoderOption: Option that fails if the compression type is invalid
func WithValueCompression(compression format.CompressionType) EncoderOption {
	return options.New(func(cfg encoderConfig) error {
		return cfg.setValueCompression(compression)
	})
}

// WithLittleEndian selects little-endian byte order for the encoded blob.
// This is the default.
func WithLittleEndian() EncoderOption {
	return options.NoError(func(cfg encoderConfig) {
		cfg.setEndianness(littleEndianOpt)
	})
}

// WithBigEndian selects big-endian byte order for the encoded blob.
//
// The header options word stays little-endian regardless, so a decoder can
// read the endianness bit before choosing an engine.
func WithBigEndian() EncoderOption {
	return options.NoError(func(cfg encoderConfig) {
		cfg.setEndianness(bigEndianOpt)
	})
}

// validateCategoryNames rejects category name sets no blob can represent.
func validateCategoryNames(names []string) error {
	if len(names) == 0 {
		return errs.ErrNoCategories
	}

	if len(names) > section.MaxCategoryCount {
		return fmt.Errorf("%w: %d categories, max %d", errs.ErrTooManyCategories, len(names), section.MaxCategoryCount)
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateCategory, name)
		}
		seen[name] = struct{}{}
	}

	return nil
}

// verifyChecksum recomputes the xxHash64 of everything before the trailer and
// compares it with the stored value, read with the header-selected engine.
func verifyChecksum(data []byte, checksumOffset int, engine endian.EndianEngine) error {
	stored := engine.Uint64(data[checksumOffset : checksumOffset+section.ChecksumSize])
	computed := hash.Checksum(data[:checksumOffset])
	if computed != stored {
		return fmt.Errorf("%w: computed %#016x, stored %#016x", errs.ErrChecksumMismatch, computed, stored)
	}

	return nil
}
