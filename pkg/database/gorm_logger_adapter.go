package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/platform-settings/pkg/log"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

// GormLoggerAdapter routes gorm statements to the zap logger.
// Successful statements log at debug, slow ones at warn, failures at error.
type GormLoggerAdapter struct {
	level         gormlogger.LogLevel
	slowThreshold time.Duration
}

var _ gormlogger.Interface = (*GormLoggerAdapter)(nil)

func NewGormLoggerAdapter(level gormlogger.LogLevel, slowThreshold time.Duration) *GormLoggerAdapter {
	return &GormLoggerAdapter{level: level, slowThreshold: slowThreshold}
}

func (l *GormLoggerAdapter) zap() *zap.Logger {
	return log.GetLogger().Desugar().WithOptions(zap.AddCallerSkip(3)).Named("gorm")
}

func (l *GormLoggerAdapter) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	cp := *l
	cp.level = level
	return &cp
}

func (l *GormLoggerAdapter) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		l.zap().Info(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLoggerAdapter) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		l.zap().Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLoggerAdapter) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		l.zap().Error(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{zap.String("sql", sql), zap.Int64("rows", rows), zap.Duration("elapsed", elapsed)}

	switch {
	case err != nil && !errors.Is(err, gormlogger.ErrRecordNotFound) && l.level >= gormlogger.Error:
		l.zap().Error("sql failed", append(fields, zap.Error(err))...)
	case l.slowThreshold > 0 && elapsed > l.slowThreshold && l.level >= gormlogger.Warn:
		l.zap().Warn("slow sql", append(fields, zap.Duration("threshold", l.slowThreshold))...)
	case l.level >= gormlogger.Info:
		l.zap().Debug("sql", fields...)
	}
}
