package logging

import (
	"fmt"
	"io"
	"strings"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New builds a JSON logger on the named backend. An empty backend means
// slog.
func New(backend string, w io.Writer, level string) (Logger, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSlog:
		return NewJSONLogger(w, level), nil
	case BackendZap:
		return NewZapJSONLogger(w, level), nil
	default:
		return nil, fmt.Errorf("unknown log backend %q", backend)
	}
}

// Sync flushes l if its backend buffers output.
func Sync(l Logger) error {
	if s, ok := l.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
