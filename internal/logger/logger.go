package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Logger interface for structured logging. Fields are alternating key/value pairs.
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Fatal(msg string, err error, fields ...interface{})
	With(fields ...interface{}) Logger
	Sync()
}

// ZapLogger implements Logger on top of a zap sugared logger
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// New creates a logger for the given environment. Production gets JSON output at
// info level, everything else gets the development console encoder at debug level.
func New(environment string) (Logger, error) {
	var cfg zap.Config
	switch strings.ToLower(environment) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	zapLogger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, err
	}
	return &ZapLogger{sugar: zapLogger.Sugar()}, nil
}

// NewNop returns a logger that discards everything
func NewNop() Logger {
	return &ZapLogger{sugar: zap.NewNop().Sugar()}
}

// Info logs an info message
func (l *ZapLogger) Info(msg string, fields ...interface{}) {
	l.sugar.Infow(msg, fields...)
}

// Error logs an error message
func (l *ZapLogger) Error(msg string, err error, fields ...interface{}) {
	l.sugar.Errorw(msg, append([]interface{}{"error", err}, fields...)...)
}

// Warn logs a warning message
func (l *ZapLogger) Warn(msg string, fields ...interface{}) {
	l.sugar.Warnw(msg, fields...)
}

// Debug logs a debug message
func (l *ZapLogger) Debug(msg string, fields ...interface{}) {
	l.sugar.Debugw(msg, fields...)
}

// Fatal logs a fatal error and exits
func (l *ZapLogger) Fatal(msg string, err error, fields ...interface{}) {
	l.sugar.Fatalw(msg, append([]interface{}{"error", err}, fields...)...)
}

// With returns a child logger that always carries the given fields
func (l *ZapLogger) With(fields ...interface{}) Logger {
	return &ZapLogger{sugar: l.sugar.With(fields...)}
}

// Sync flushes buffered log entries
func (l *ZapLogger) Sync() {
	_ = l.sugar.Sync()
}
