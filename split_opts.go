package zipsplit

import (
	"log/slog"

	"github.com/meigma/zipsplit/partition"
	"github.com/meigma/zipsplit/source"
)

// config holds configuration for a partitioning run.
type config struct {
	maxCount        int
	maxSize         uint64
	compression     Compression
	deflateLevel    *int
	skipCompression []SkipCompressionFunc
	logger          *slog.Logger
	progress        ProgressFunc
	onPart          func(Part)
	debug           bool
	payloadDir      string
}

// Option configures FromDirectory and FromArchive.
type Option func(*config)

func newConfig(opts []Option) config {
	cfg := config{
		maxCount: DefaultMaxCount,
		maxSize:  DefaultMaxSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithMaxCount limits the number of entries per part (default 1000).
func WithMaxCount(n int) Option {
	return func(c *config) {
		c.maxCount = n
	}
}

// WithMaxSize limits the cumulative declared entry size per part in bytes
// (default 1,000,000,000).
func WithMaxSize(n uint64) Option {
	return func(c *config) {
		c.maxSize = n
	}
}

// WithCompression sets the zip method for entries (default deflate).
func WithCompression(comp Compression) Option {
	return func(c *config) {
		c.compression = comp
	}
}

// WithDeflateLevel sets the deflate compression level.
func WithDeflateLevel(level int) Option {
	return func(c *config) {
		c.deflateLevel = &level
	}
}

// WithSkipCompression adds predicates that decide to store an entry
// uncompressed. If any predicate returns true, the entry is stored.
func WithSkipCompression(fns ...SkipCompressionFunc) Option {
	return func(c *config) {
		c.skipCompression = append(c.skipCompression, fns...)
	}
}

// WithLogger sets the logger for the run and its source and writer.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithProgress sets a callback for progress updates.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithPartHandler registers a callback invoked as soon as each part is
// finalized, before the next one is opened.
func WithPartHandler(fn func(Part)) Option {
	return func(c *config) {
		c.onPart = fn
	}
}

// WithDebug enables the original-name to output-name mapping trace for
// archive sources. It never changes which entries are written.
func WithDebug(enabled bool) Option {
	return func(c *config) {
		c.debug = enabled
	}
}

// WithPayloadDir overrides the payload directory name looked for under an
// archive's top-level directory (default "maven-repository").
func WithPayloadDir(name string) Option {
	return func(c *config) {
		c.payloadDir = name
	}
}

// log returns the logger, falling back to a discard logger if nil.
func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// reportProgress sends a progress event if a callback is configured.
func (c *config) reportProgress(stage ProgressStage, path string, part, filesDone int, bytesDone uint64) {
	if c.progress == nil {
		return
	}
	c.progress(ProgressEvent{
		Stage:     stage,
		Path:      path,
		Part:      part,
		FilesDone: filesDone,
		BytesDone: bytesDone,
	})
}

func (c *config) sourceOptions() []source.Option {
	return []source.Option{
		source.WithLogger(c.logger),
		source.WithDebug(c.debug),
		source.WithPayloadDir(c.payloadDir),
	}
}

func (c *config) partitionOptions() []partition.Option {
	opts := []partition.Option{
		partition.WithMaxCount(c.maxCount),
		partition.WithMaxSize(c.maxSize),
		partition.WithCompression(c.compression),
		partition.WithSkipCompression(c.skipCompression...),
		partition.WithLogger(c.logger),
		partition.WithOnClose(func(p Part) {
			c.reportProgress(StagePartClosed, p.Path, p.Index, 0, 0)
			if c.onPart != nil {
				c.onPart(p)
			}
		}),
	}
	if c.deflateLevel != nil {
		opts = append(opts, partition.WithDeflateLevel(*c.deflateLevel))
	}
	return opts
}
