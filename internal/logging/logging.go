// Package logging constructs the single *zap.Logger each CLI process
// threads explicitly through its call graph (§0, §9) — never a
// package-global logger, since the engine's per-root state is itself
// threaded explicitly rather than kept in globals.
package logging

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger writing to stderr at the given level
// ("debug", "info", "warn", "error"), stamped with a run ID so every
// line from one invocation can be correlated (§0's "run correlation").
func New(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("logging: invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: building logger: %w", err)
	}

	return logger.With(zap.String("run_id", uuid.NewString())), nil
}
