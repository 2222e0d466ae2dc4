package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes gorm's statement log through zerolog. Statements are
// logged at debug level, statements slower than the threshold at warn,
// failures at error. gorm.ErrRecordNotFound is not a failure.
type GormLogger struct {
	log           zerolog.Logger
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger creates a gorm logger. A zero slowThreshold disables slow
// statement warnings.
func NewGormLogger(log zerolog.Logger, slowThreshold time.Duration) *GormLogger {
	return &GormLogger{
		log:           log.With().Str("component", "gorm").Logger(),
		slowThreshold: slowThreshold,
	}
}

// LogMode maps gorm's levels onto the zerolog level.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	var zl zerolog.Level
	switch level {
	case gormlogger.Silent:
		zl = zerolog.Disabled
	case gormlogger.Error:
		zl = zerolog.ErrorLevel
	case gormlogger.Warn:
		zl = zerolog.WarnLevel
	default:
		zl = zerolog.DebugLevel
	}
	return &GormLogger{log: l.log.Level(zl), slowThreshold: l.slowThreshold}
}

func (l *GormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	l.log.Info().Msg(fmt.Sprintf(msg, args...))
}

func (l *GormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	l.log.Warn().Msg(fmt.Sprintf(msg, args...))
}

func (l *GormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	l.log.Error().Msg(fmt.Sprintf(msg, args...))
}

// Trace logs one executed statement.
func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)

	var event *zerolog.Event
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		event = l.log.Error().Err(err)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold:
		event = l.log.Warn().Dur("threshold", l.slowThreshold)
	default:
		event = l.log.Debug()
	}
	if event == nil {
		// level disabled
		return
	}

	sql, rows := fc()
	event.Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("statement")
}
