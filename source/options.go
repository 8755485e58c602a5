package source

import (
	"log/slog"
	"os"
)

// DefaultPayloadDir is the directory name that marks the payload inside an
// archive's top-level wrapper.
const DefaultPayloadDir = "maven-repository"

type config struct {
	logger     *slog.Logger
	debug      bool
	payloadDir string
}

func newConfig(opts []Option) config {
	cfg := config{payloadDir: DefaultPayloadDir}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// log returns the logger, falling back to a discard logger if nil.
func (c *config) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// traceLog returns the logger used for the debug mapping trace. With debug
// enabled and no logger configured, the trace goes to stderr.
func (c *config) traceLog() *slog.Logger {
	if !c.debug {
		return nil
	}
	if c.logger == nil {
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return c.logger
}

// Option configures a source.
type Option func(*config)

// WithLogger sets the logger for source operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithDebug enables a per-entry trace of original name to remapped name.
// It only affects archive sources and has no effect on which entries are
// yielded.
func WithDebug(enabled bool) Option {
	return func(c *config) {
		c.debug = enabled
	}
}

// WithPayloadDir overrides the payload directory name searched for under
// an archive's top-level directory. An empty name keeps the default.
func WithPayloadDir(name string) Option {
	return func(c *config) {
		if name != "" {
			c.payloadDir = name
		}
	}
}
