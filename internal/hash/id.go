package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// SetID computes the xxHash64 identity of an ordered category set.
// Names are separated by a NUL byte so ("ab","c") and ("a","bc") hash
// differently. The hash is order sensitive.
func SetID(names []string) uint64 {
	var d xxhash.Digest
	d.Reset()
	for i, name := range names {
		if i > 0 {
			_, _ = d.Write([]byte{0})
		}
		_, _ = d.WriteString(name)
	}

	return d.Sum64()
}

// Checksum computes the xxHash64 of raw bytes, used for blob integrity checks.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
