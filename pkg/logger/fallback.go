/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"os"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options control how the process logger is built.
type Options struct {
	Level string // log level name, see ParseLogLevel
	Path  string // log file; empty picks the first writable platform path
	// Console tees human-readable output to stderr. The TUI turns this off
	// so log lines do not tear the screen.
	Console bool
	// Debug makes DPanic entries panic and forces debug level.
	Debug bool
}

func NewFallbackLogger(opts Options) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		levelFor(opts),
	)
	return zap.New(core, buildOptions(opts)...)
}

// InitializeWithFallback builds the process logger: JSON to the log file,
// optionally teed to a console encoder on stderr. When no log file can be
// opened it logs to stderr only. It returns the log path in use, if any.
func InitializeWithFallback(opts Options) string {
	path := opts.Path
	if path == "" {
		found, err := FindWritableLogPath()
		if err == nil {
			path = found
		}
	}

	var writer zapcore.WriteSyncer
	if path != "" {
		w, err := GetLogFileWriter(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "⚠️  Could not write to log file, logging to console only:", err)
			path = ""
		} else {
			writer = w
		}
	}

	if writer == nil {
		opts.Console = true
		install(NewFallbackLogger(opts))
		return ""
	}

	level := levelFor(opts)
	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, level)}
	if opts.Console {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), level))
	}

	l := zap.New(zapcore.NewTee(cores...), buildOptions(opts)...)
	install(l)
	l.Debug("Logger initialized",
		zap.String("log_level", level.String()),
		zap.String("log_path", path),
		zap.Bool("debug", opts.Debug),
	)
	return path
}

func install(l *zap.Logger) {
	SetLogger(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

func levelFor(opts Options) zapcore.Level {
	if opts.Debug {
		return zapcore.DebugLevel
	}
	return ParseLogLevel(opts.Level)
}

func buildOptions(opts Options) []zap.Option {
	zopts := []zap.Option{zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)}
	if opts.Debug {
		zopts = append(zopts, zap.Development())
	}
	return zopts
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}
