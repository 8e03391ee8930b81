package binout

import (
	"log/slog"

	"github.com/PucklaMotzer09/dynareadout/internal/enumerate"
)

// defaultBufferSize is the read-ahead buffer avvmoto/buf-readerat keeps per
// member file: an untuned 1024 bytes, adequate for the small, infrequent
// payload reads a binout archive's query path makes.
const defaultBufferSize = 1024

// Option configures [Open]. Every setting below has a default (see
// newConfig), so most callers pass no options at all.
type Option func(*config)

type config struct {
	enumerator enumerate.Enumerator
	logger     *slog.Logger
	bufferSize int
}

func newConfig(opts []Option) config {
	c := config{
		enumerator: enumerate.Glob{},
		logger:     slog.Default(),
		bufferSize: defaultBufferSize,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithEnumerator overrides the default glob-based file enumerator — the
// collaborator responsible for expanding a caller-supplied pattern into
// member file paths, kept separate from parsing so it can be swapped out.
// Tests use this to hand the archive a fixed, in-memory list of paths.
func WithEnumerator(e enumerate.Enumerator) Option {
	return func(c *config) { c.enumerator = e }
}

// WithLogger overrides the *slog.Logger used for open-time diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithBufferSize overrides the read-ahead buffer size used for each member
// file's payload reads.
func WithBufferSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bufferSize = n
		}
	}
}
