package trapmap

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent = slog.New(slog.DiscardHandler)
	logger atomic.Pointer[slog.Logger]
)

func init() { logger.Store(silent) }

// SetLogger routes the package's log output to l. Maps are built silently until a
// logger is set; SetLogger(nil) silences them again.
//
// Info records mark the start of a session and the end of a build. Debug records
// describe each insertion: how many trapezoids the segment crosses, whether its
// endpoints are new, and when locating a shared endpoint falls back to the exact
// descent.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	logger.Store(l)
}

// Logger returns the logger set by [SetLogger]. It may be called from any goroutine.
func Logger() *slog.Logger {
	return logger.Load()
}
