package partition

import (
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// Compression identifies the zip method used for entries in a part.
type Compression uint8

const (
	// CompressionDeflate compresses entries with DEFLATE (zip method 8).
	CompressionDeflate Compression = iota
	// CompressionStore writes entries uncompressed (zip method 0).
	CompressionStore
	// CompressionZstd compresses entries with Zstandard (zip method 93).
	CompressionZstd
)

// String returns the human-readable name of the compression algorithm.
func (c Compression) String() string {
	switch c {
	case CompressionDeflate:
		return "deflate"
	case CompressionStore:
		return "store"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// ParseCompression maps a name returned by String back to a Compression.
func ParseCompression(name string) (Compression, bool) {
	for _, c := range []Compression{CompressionDeflate, CompressionStore, CompressionZstd} {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// method returns the zip method number.
func (c Compression) method() uint16 {
	switch c {
	case CompressionStore:
		return zip.Store
	case CompressionZstd:
		return zstd.ZipMethodWinZip
	default:
		return zip.Deflate
	}
}
