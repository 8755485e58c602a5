package partition

import (
	"log/slog"

	"github.com/klauspost/compress/flate"

	"github.com/meigma/zipsplit/internal/write"
)

// Defaults applied by New.
const (
	DefaultMaxCount = 1000
	DefaultMaxSize  = 1_000_000_000
)

// SkipCompressionFunc returns true when an entry should be stored uncompressed.
type SkipCompressionFunc = write.SkipCompressionFunc

// DefaultSkipCompression returns a SkipCompressionFunc that skips small
// entries and known already-compressed extensions such as .jar and .zip.
var DefaultSkipCompression = write.DefaultSkipCompression

type config struct {
	maxCount        int
	maxSize         uint64
	compression     Compression
	deflateLevel    int
	skipCompression []SkipCompressionFunc
	logger          *slog.Logger
	onClose         func(Part)
}

// Option configures a Writer.
type Option func(*config)

// WithMaxCount limits the number of entries per part (default 1000).
// Values below 1 behave like 1.
func WithMaxCount(n int) Option {
	return func(c *config) {
		c.maxCount = n
	}
}

// WithMaxSize limits the cumulative declared size per part in bytes
// (default 1,000,000,000). A part is closed before the entry that would
// make its size reach the limit.
func WithMaxSize(n uint64) Option {
	return func(c *config) {
		c.maxSize = n
	}
}

// WithCompression sets the zip method used for entries (default deflate).
func WithCompression(comp Compression) Option {
	return func(c *config) {
		c.compression = comp
	}
}

// WithDeflateLevel sets the deflate level, from flate.HuffmanOnly to
// flate.BestCompression. It has no effect for other compressions.
func WithDeflateLevel(level int) Option {
	return func(c *config) {
		c.deflateLevel = level
	}
}

// WithSkipCompression adds predicates that decide to store an entry
// uncompressed. If any predicate returns true, the entry is stored.
func WithSkipCompression(fns ...SkipCompressionFunc) Option {
	return func(c *config) {
		c.skipCompression = append(c.skipCompression, fns...)
	}
}

// WithLogger sets the logger for writer operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithOnClose registers a callback invoked after each part is finalized.
// It runs synchronously on the appending goroutine.
func WithOnClose(fn func(Part)) Option {
	return func(c *config) {
		c.onClose = fn
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		maxCount:     DefaultMaxCount,
		maxSize:      DefaultMaxSize,
		deflateLevel: flate.DefaultCompression,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
