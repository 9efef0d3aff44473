package logger

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// Queries slower than this get a warn entry. Billing reads are small; anything
// past 200ms usually means a missing index or an unbounded month scan.
const defaultSlowQueryThreshold = 200 * time.Millisecond

// QueryLogger adapts zap to GORM's logger interface so SQL ends up in the same
// structured stream as the rest of the app, tagged with the request ID when
// one is on the context.
type QueryLogger struct {
	logger            *zap.Logger
	level             gormlogger.LogLevel
	slowThreshold     time.Duration
	logRecordNotFound bool
}

// QueryLoggerOption configures a QueryLogger
type QueryLoggerOption func(*QueryLogger)

// WithSlowQueryThreshold overrides the slow query threshold
func WithSlowQueryThreshold(threshold time.Duration) QueryLoggerOption {
	return func(l *QueryLogger) {
		l.slowThreshold = threshold
	}
}

// WithRecordNotFoundLogging logs gorm.ErrRecordNotFound as errors. Off by
// default: lookups that legitimately miss (payment matching, duplicate
// checks) would flood the error stream.
func WithRecordNotFoundLogging() QueryLoggerOption {
	return func(l *QueryLogger) {
		l.logRecordNotFound = true
	}
}

// NewQueryLogger builds a GORM logger at the given app log level ("silent",
// "error", "warn", "info", "debug").
func NewQueryLogger(zapLogger *zap.Logger, level string, opts ...QueryLoggerOption) *QueryLogger {
	l := &QueryLogger{
		logger:        zapLogger.Named("gorm"),
		level:         gormLevel(level),
		slowThreshold: defaultSlowQueryThreshold,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func gormLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info", "debug":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// LogMode implements gormlogger.Interface
func (l *QueryLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

// Info implements gormlogger.Interface
func (l *QueryLogger) Info(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

// Warn implements gormlogger.Interface
func (l *QueryLogger) Warn(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

// Error implements gormlogger.Interface
func (l *QueryLogger) Error(_ context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

// Trace logs each executed statement with its duration and affected rows
func (l *QueryLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	if requestID := GetRequestID(ctx); requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}

	switch {
	case err != nil && l.level >= gormlogger.Error:
		if errors.Is(err, gormlogger.ErrRecordNotFound) && !l.logRecordNotFound {
			return
		}
		l.logger.Error("query failed", append(fields, zap.Error(err))...)

	case l.slowThreshold > 0 && elapsed >= l.slowThreshold && l.level >= gormlogger.Warn:
		l.logger.Warn("slow query", append(fields, zap.Duration("threshold", l.slowThreshold))...)

	case l.level >= gormlogger.Info:
		l.logger.Debug("query", fields...)
	}
}

var _ gormlogger.Interface = (*QueryLogger)(nil)
