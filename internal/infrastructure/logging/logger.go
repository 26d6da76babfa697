package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the zap logger shared by every component. Components take a
// child via Named so their entries carry a "logger" field.
type Logger struct {
	*zap.Logger
	dev bool
}

// Options selects level, encoding and destination.
type Options struct {
	Level       string // debug, info, warn or error
	Development bool   // console encoding, colours and stack traces
	Output      io.Writer
}

// New builds a logger. Output defaults to stderr so command output on
// stdout stays machine readable.
func New(opts Options) (*Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	var encoder zapcore.Encoder
	if opts.Development {
		encoder = zapcore.NewConsoleEncoder(consoleEncoding())
	} else {
		encoder = zapcore.NewJSONEncoder(jsonEncoding())
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), zap.NewAtomicLevelAt(level))

	zapOpts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if opts.Development {
		zapOpts = append(zapOpts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	} else {
		zapOpts = append(zapOpts, zap.AddStacktrace(zapcore.DPanicLevel))
	}

	return &Logger{Logger: zap.New(core, zapOpts...), dev: opts.Development}, nil
}

// FromSettings builds a logger from configuration values. An invalid
// level logs at info, with a warning saying so.
func FromSettings(level string, development bool) *Logger {
	opts := Options{Level: level, Development: development}
	if development && level == "" {
		opts.Level = "debug"
	}

	logger, err := New(opts)
	if err == nil {
		return logger
	}

	opts.Level = "info"
	logger, _ = New(opts)
	logger.Warn("Falling back to info level", zap.String("requested", level))
	return logger
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named returns a child logger for a component.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), dev: l.dev}
}

// With returns a child logger carrying fields.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), dev: l.dev}
}

// Development reports whether the logger writes console output
func (l *Logger) Development() bool {
	return l.dev
}

func jsonEncoding() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	return cfg
}

func consoleEncoding() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}
