// Package logging builds the zap logger used by the runtime.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sunbind/sunbind/types"
)

// New returns a logger writing JSON lines to stderr and, when cfg.File is
// set, to a rotating file as well. closeLog flushes the logger and closes the
// file; it may be called more than once.
func New(cfg types.LogConfig) (log *zap.Logger, closeLog func() error, err error) {
	return build(cfg, zapcore.Lock(os.Stderr))
}

func build(cfg types.LogConfig, console zapcore.WriteSyncer) (*zap.Logger, func() error, error) {
	level := zap.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
	}

	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	var file *lumberjack.Logger
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(enc), console, level),
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB, // MB
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays, // days
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(file), level))
	}
	log := zap.New(zapcore.NewTee(cores...))
	closeLog := func() error {
		// syncing a terminal fails on some platforms; only the file matters
		_ = log.Sync()
		if file == nil {
			return nil
		}
		return file.Close()
	}
	return log, closeLog, nil
}
