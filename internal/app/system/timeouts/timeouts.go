// Package timeouts provides centralized timeout values for I/O done while
// serving requests and building pages.
//
// Timeouts can be configured at startup using Configure(). If not configured,
// defaults are used.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: single-document writes, e.g. logging a page build
//   - Medium: list queries, e.g. recent builds
//   - Directory: a whole page build against the directory service
package timeouts

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing      = 2 * time.Second
	DefaultShort     = 5 * time.Second
	DefaultMedium    = 10 * time.Second
	DefaultDirectory = 30 * time.Second
)

// mu protects all timeout values from concurrent access.
var mu sync.RWMutex

var (
	ping      = DefaultPing
	short     = DefaultShort
	medium    = DefaultMedium
	directory = DefaultDirectory
)

// Ping returns the timeout for health checks.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for single-document operations.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Directory returns the deadline for one page build, covering every
// directory call the build makes.
func Directory() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return directory
}

// Config holds timeout configuration values.
// Zero values are ignored (defaults are kept).
type Config struct {
	Ping      time.Duration
	Short     time.Duration
	Medium    time.Duration
	Directory time.Duration
}

// Configure sets custom timeout values. Zero values in the config are ignored,
// keeping the current (or default) values. Call it during startup before
// handlers are registered.
func Configure(cfg Config) {
	mu.Lock()
	defer mu.Unlock()
	if cfg.Ping > 0 {
		ping = cfg.Ping
	}
	if cfg.Short > 0 {
		short = cfg.Short
	}
	if cfg.Medium > 0 {
		medium = cfg.Medium
	}
	if cfg.Directory > 0 {
		directory = cfg.Directory
	}
}

// Reset restores all timeouts to their default values.
// Useful for testing.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	ping = DefaultPing
	short = DefaultShort
	medium = DefaultMedium
	directory = DefaultDirectory
}

// Current returns the current timeout configuration as a Config struct.
func Current() Config {
	mu.RLock()
	defer mu.RUnlock()
	return Config{
		Ping:      ping,
		Short:     short,
		Medium:    medium,
		Directory: directory,
	}
}

// WithTimeout creates a context with timeout and returns a cancel function that
// logs a warning if the context ended because its deadline passed.
//
// Example:
//
//	ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Directory(), log, "about page build")
//	defer cancel()
func WithTimeout(parent context.Context, timeout time.Duration, log *zap.Logger, operation string) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	return ctx, func() {
		if ctx.Err() == context.DeadlineExceeded && log != nil {
			log.Warn("operation timed out",
				zap.String("operation", operation),
				zap.Duration("timeout", timeout),
			)
		}
		cancel()
	}
}
