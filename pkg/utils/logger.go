package utils

import "go.uber.org/zap"

// NewLogger returns the service logger. When debug is true, uses development
// config (human-readable, debug level, so dataset reloads and cache fills are
// visible); otherwise uses production config (JSON, info level).
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ComponentLogger returns a child logger tagged with the component name, so
// log lines from the engine, cache, and watcher are distinguishable.
func ComponentLogger(base *zap.Logger, component string) *zap.Logger {
	if base == nil {
		return zap.NewNop()
	}
	return base.With(zap.String("component", component))
}
