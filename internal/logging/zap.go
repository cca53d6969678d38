package logging

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type zapLogger struct {
	l     *zap.Logger
	level zap.AtomicLevel
}

func newZapLogger(cfg Config) Logger {
	level := zap.NewAtomicLevelAt(zapLevel(cfg.Level))

	var encoder zapcore.Encoder
	switch strings.ToLower(cfg.Format) {
	case "json":
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	var opts []zap.Option
	if cfg.AddSource {
		opts = append(opts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	core := zapcore.NewCore(encoder, zapcore.AddSync(cfg.Output), level)
	return &zapLogger{l: zap.New(core, opts...), level: level}
}

// NewZap wraps an existing zap logger. Its level is fixed by the caller's
// core, so SetLevel only affects loggers built by New.
func NewZap(l *zap.Logger) Logger {
	if l == nil {
		return Noop()
	}
	return &zapLogger{l: l, level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

func (z *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{l: z.l.With(toZapFields(fields...)...), level: z.level}
}

func (z *zapLogger) SetLevel(level string) { z.level.SetLevel(zapLevel(level)) }

func (z *zapLogger) Debug(_ context.Context, msg string, fields ...Field) {
	z.l.Debug(msg, toZapFields(fields...)...)
}

func (z *zapLogger) Info(_ context.Context, msg string, fields ...Field) {
	z.l.Info(msg, toZapFields(fields...)...)
}

func (z *zapLogger) Warn(_ context.Context, msg string, fields ...Field) {
	z.l.Warn(msg, toZapFields(fields...)...)
}

func (z *zapLogger) Error(_ context.Context, msg string, fields ...Field) {
	z.l.Error(msg, toZapFields(fields...)...)
}

// Sync flushes buffered zap output.
func (z *zapLogger) Sync() error { return z.l.Sync() }

func toZapFields(fields ...Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

func zapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Sync flushes l if its backend buffers output.
func Sync(l Logger) error {
	if s, ok := l.(interface{ Sync() error }); ok {
		return s.Sync()
	}
	return nil
}
