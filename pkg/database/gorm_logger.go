package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// gormLogger sends gorm's output through zerolog so database messages share
// the application's format and fields.
type gormLogger struct {
	zl            zerolog.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

func newGormLogger(zl zerolog.Logger, level gormlogger.LogLevel, slow time.Duration) *gormLogger {
	return &gormLogger{
		zl:            zl.With().Str("component", "gorm").Logger(),
		level:         level,
		slowThreshold: slow,
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	next := *l
	next.level = level
	return &next
}

func (l *gormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Info {
		l.zl.Info().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.zl.Warn().Msg(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= gormlogger.Error {
		l.zl.Error().Msg(fmt.Sprintf(msg, args...))
	}
}

// Trace logs failed queries, slow queries, and with level Info every query.
// Missing rows are not failures.
func (l *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)

	var event *zerolog.Event
	msg := "query"
	switch {
	case err != nil && l.level >= gormlogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		event = l.zl.Error().Err(err)
		msg = "query failed"
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		event = l.zl.Warn().Dur("threshold", l.slowThreshold)
		msg = "slow query"
	case l.level >= gormlogger.Info:
		event = l.zl.Info()
	default:
		return
	}

	sql, rows := fc()
	event.Dur("elapsed", elapsed).Str("sql", sql)
	if rows >= 0 {
		event.Int64("rows", rows)
	}
	event.Msg(msg)
}
