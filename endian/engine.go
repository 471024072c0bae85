// Package endian provides byte order utilities for the blob wire format.
//
// It combines the ByteOrder and AppendByteOrder interfaces of encoding/binary
// into a single EndianEngine interface, so header and payload writers can
// read, write and append multi-byte values through one handle.
//
// # Basic Usage
//
// Most users should use GetLittleEndianEngine() as it's the default for upsetdata blobs:
//
//	import "github.com/arloliu/upsetdata/endian"
//
//	engine := endian.GetLittleEndianEngine()
//	encoder := encoding.NewValueEncoder(engine)
//
// For interoperability with big-endian systems:
//
//	engine := endian.GetBigEndianEngine()
//	encoder := encoding.NewValueEncoder(engine)
//
// # Performance
//
// Using EndianEngine (which includes AppendByteOrder) avoids the scratch
// buffer a plain ByteOrder forces on appends:
//
//	// Using EndianEngine (recommended)
//	buf = engine.AppendUint64(buf, value)
//
//	// Using ByteOrder only
//	tmp := make([]byte, 8)
//	engine.PutUint64(tmp, value)
//	buf = append(buf, tmp...) // extra allocation
//
// # Thread Safety
//
// The returned EndianEngine instances are immutable, stateless and safe for
// concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
