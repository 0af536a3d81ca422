package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskiturk2021/api-gateway/internal/pkg/config"
	"github.com/eskiturk2021/api-gateway/internal/pkg/logger"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger forwards gorm's output to the gateway logger. Lookups that find
// no row are expected control flow and are never logged.
type gormLogger struct {
	logger        logger.Logger
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

// NewGormLogger creates a gorm logger writing through log. SQL statements are
// traced only at the debug level; info and warning report slow queries and
// failures; error and critical report failures only.
func NewGormLogger(log logger.Logger, logLevel string) gormlogger.Interface {
	return &gormLogger{
		logger:        log,
		level:         gormLevel(logLevel),
		slowThreshold: slowQueryThreshold,
	}
}

func gormLevel(logLevel string) gormlogger.LogLevel {
	switch config.NormalizeLogLevel(logLevel) {
	case config.LogLevelDebug:
		return gormlogger.Info
	case config.LogLevelError, config.LogLevelCritical:
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}

func (l *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	copied := *l
	copied.level = level
	return &copied
}

func (l *gormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.logger.Info(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.logger.Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.logger.Error(fmt.Sprintf(msg, data...))
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.logger.Error(fmt.Sprintf("query failed after %s [rows:%d] %s: %v", elapsed, rows, sql, err))
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.logger.Warn(fmt.Sprintf("slow query %s [rows:%d] %s", elapsed, rows, sql))
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.logger.Debug(fmt.Sprintf("%s [rows:%d] %s", elapsed, rows, sql))
	}
}
