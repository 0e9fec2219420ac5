// internal/database/logger.go
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/ecommerce-api/internal/logging"
)

// gormLogrusLogger routes gorm's logging through the request-scoped logrus entry.
type gormLogrusLogger struct {
	level         logger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger(level string, slowThreshold time.Duration) logger.Interface {
	return &gormLogrusLogger{
		level:         parseGormLevel(level),
		slowThreshold: slowThreshold,
	}
}

func parseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func (l *gormLogrusLogger) LogMode(level logger.LogLevel) logger.Interface {
	cloned := *l
	cloned.level = level
	return &cloned
}

func (l *gormLogrusLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Info {
		logging.FromContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogrusLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Warn {
		logging.FromContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogrusLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.level >= logger.Error {
		logging.FromContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *gormLogrusLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level == logger.Silent {
		return
	}

	elapsed := time.Since(begin)
	fields := func() logrus.Fields {
		sql, rows := fc()
		return logrus.Fields{
			"elapsed_ms": elapsed.Milliseconds(),
			"rows":       rows,
			"sql":        sql,
		}
	}

	switch {
	case err != nil && l.level >= logger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		logging.FromContext(ctx).WithFields(fields()).WithError(err).Error("query failed")
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= logger.Warn:
		logging.FromContext(ctx).WithFields(fields()).Warn("slow query")
	case l.level >= logger.Info:
		logging.FromContext(ctx).WithFields(fields()).Debug("query")
	}
}
