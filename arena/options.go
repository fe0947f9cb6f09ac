package arena

import "log/slog"

type config struct {
	chunkSize int
	limit     int
	logger    *slog.Logger
}

// Option configures an Arena created by New.
type Option func(*config)

func defaultConfig() config {
	return config{
		chunkSize: DefaultChunkSize,
		logger:    slog.Default(),
	}
}

// WithChunkSize sets the size of each chunk requested from the Go heap.
// Values <= 0 select DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(c *config) {
		if n <= 0 {
			n = DefaultChunkSize
		}
		c.chunkSize = n
	}
}

// WithLimit caps the total capacity the arena may acquire, in bytes.
// Once the cap is reached, allocations fail instead of growing.
// Zero (the default) means unlimited.
func WithLimit(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = 0
		}
		c.limit = n
	}
}

// WithLogger sets the logger used to report cleanups that panic.
// A nil logger keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
