package logger

import (
	"context"
	"errors"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's query and driver logs through zap so database
// output carries the same request fields as the rest of the service.
type GormLogger struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{level: level, slowThreshold: slowThreshold}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		DebugWithContext(ctx, msg).Any("args", args).Log()
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		WarnWithContext(ctx, msg).Any("args", args).Log()
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		ErrorWithContext(ctx, msg).Any("args", args).Log()
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)

	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		ErrorWithContext(ctx, "Database query failed").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Err(err).
			Log()
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		WarnWithContext(ctx, "Slow database query").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			String("threshold", l.slowThreshold.String()).
			Log()
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		DebugWithContext(ctx, "Database query").
			String("sql", sql).
			Int64("rows", rows).
			Duration(elapsed).
			Log()
	}
}
