package zipsplit

import (
	"github.com/meigma/zipsplit/partition"
	"github.com/meigma/zipsplit/source"
)

// --- Re-exports from source and partition ---

// Entry is one file yielded by a source.
type Entry = source.Entry

// Part describes a finalized part archive.
type Part = partition.Part

// Compression identifies the zip method used for entries in a part.
type Compression = partition.Compression

// SkipCompressionFunc returns true when an entry should be stored uncompressed.
type SkipCompressionFunc = partition.SkipCompressionFunc

// Compression constants.
const (
	// CompressionDeflate compresses entries with DEFLATE.
	CompressionDeflate = partition.CompressionDeflate
	// CompressionStore writes entries uncompressed.
	CompressionStore = partition.CompressionStore
	// CompressionZstd compresses entries with Zstandard (zip method 93).
	CompressionZstd = partition.CompressionZstd
)

// Default limits.
const (
	DefaultMaxCount = partition.DefaultMaxCount
	DefaultMaxSize  = partition.DefaultMaxSize
)

// DefaultPayloadDir is the directory kept from a source archive when present.
const DefaultPayloadDir = source.DefaultPayloadDir

// DefaultSkipCompression returns a SkipCompressionFunc that skips small
// entries and known already-compressed extensions.
var DefaultSkipCompression = partition.DefaultSkipCompression

// PartName returns the file name of the part with the given index.
var PartName = partition.PartName
