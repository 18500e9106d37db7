package logger

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultSlowThreshold = 200 * time.Millisecond

// gormLogger routes gorm's query log into the structured logger.
type gormLogger struct {
	slowThreshold time.Duration
	level         gormlogger.LogLevel
}

// NewGormLogger returns a gorm logger backed by the global slog logger.
func NewGormLogger() gormlogger.Interface {
	return &gormLogger{
		slowThreshold: defaultSlowThreshold,
		level:         gormlogger.Warn,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		globalLogger.InfoContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		globalLogger.WarnContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		globalLogger.ErrorContext(ctx, msg, "data", data)
	}
}

func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []any{"elapsed", elapsed, "rows", rows, "sql", sql}

	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		globalLogger.DebugContext(ctx, "database query - no records found", fields...)
	case err != nil:
		globalLogger.ErrorContext(ctx, "database query failed", append(fields, "error", err)...)
	case elapsed > l.slowThreshold:
		globalLogger.WarnContext(ctx, "slow query detected", append(fields, "threshold", l.slowThreshold)...)
	default:
		globalLogger.DebugContext(ctx, "database query completed", fields...)
	}
}
