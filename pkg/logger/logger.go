// Package logger builds the structured loggers used by the engine, the
// compaction package, and the CLI. The engine logs open, close, and
// compaction triggers at Info; the compactor logs each phase at Info and
// its failures at Error. The segment and segment set packages do not log.
package logger

import "go.uber.org/zap"

// New builds a *zap.SugaredLogger scoped to the given service name, using
// zap's production config (JSON encoding, info level and above).
func New(service string) *zap.SugaredLogger {
	base, err := zap.NewProduction()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// NewDevelopment builds a *zap.SugaredLogger using zap's development config
// (console encoding, debug level and above). Used by the CLI so local runs
// are readable without a JSON log viewer.
func NewDevelopment(service string) *zap.SugaredLogger {
	base, err := zap.NewDevelopment()
	if err != nil {
		base = zap.NewNop()
	}
	return base.Named(service).Sugar()
}

// Noop returns a logger that discards everything, used in tests that don't
// care about log output.
func Noop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
