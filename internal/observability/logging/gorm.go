package logging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm output through slog so queries carry the request id
// and module of the operation that issued them.
type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormlogger.LogLevel
	// ExpectedErrors are logged at debug level instead of as failures. The
	// repositories translate them into domain errors.
	ExpectedErrors []error
}

func NewGormLogger(slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		SlowThreshold:  slowThreshold,
		LogLevel:       gormlogger.Warn,
		ExpectedErrors: []error{gorm.ErrRecordNotFound, gorm.ErrDuplicatedKey},
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.LogLevel = level

	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...any) {
	l.log(ctx, gormlogger.Info, slog.LevelInfo, msg, args...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.log(ctx, gormlogger.Warn, slog.LevelWarn, msg, args...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...any) {
	l.log(ctx, gormlogger.Error, slog.LevelError, msg, args...)
}

func (l *GormLogger) log(ctx context.Context, min gormlogger.LogLevel, level slog.Level, msg string, args ...any) {
	if l.LogLevel < min {
		return
	}

	slog.Log(ctx, level, fmt.Sprintf(msg, args...), slog.String("event", "db.log"))
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.LogLevel <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()

	attrs := []slog.Attr{
		slog.Duration("duration", elapsed),
		slog.String("sql", sql),
		slog.Int64("rows", rows),
	}

	switch {
	case err != nil && l.isExpected(err):
		slog.LogAttrs(ctx, slog.LevelDebug, "query rejected",
			append(attrs, slog.String("event", "db.query.rejected"), slog.String("error", err.Error()))...)
	case err != nil && l.LogLevel >= gormlogger.Error:
		slog.LogAttrs(ctx, slog.LevelError, "query error",
			append(attrs, slog.String("event", "db.query.fail"), slog.String("error", err.Error()))...)
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.LogLevel >= gormlogger.Warn:
		slog.LogAttrs(ctx, slog.LevelWarn, "slow query",
			append(attrs, slog.String("event", "db.query.slow"), slog.Duration("threshold", l.SlowThreshold))...)
	case l.LogLevel >= gormlogger.Info:
		slog.LogAttrs(ctx, slog.LevelDebug, "query executed",
			append(attrs, slog.String("event", "db.query"))...)
	}
}

func (l *GormLogger) isExpected(err error) bool {
	for _, target := range l.ExpectedErrors {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
