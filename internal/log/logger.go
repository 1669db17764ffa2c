// Package log builds the zap logger used across the client.
// The TUI owns the terminal, so all logging goes to a file under the
// prajna data directory.
package log

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const logFile = "prajna.log"

// New creates a JSON file logger writing to <dir>/prajna.log.
// The directory is created if missing. debug lowers the level to Debug.
func New(dir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, logFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level)

	return zap.New(core), nil
}

// Nop returns a no-op logger for tests and non-interactive commands.
func Nop() *zap.Logger {
	return zap.NewNop()
}
