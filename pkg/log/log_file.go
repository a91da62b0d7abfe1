package log

import (
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// getFileLogWriter rotates by size and prunes by age and count.
func getFileLogWriter(conf *Conf) zapcore.WriteSyncer {
	name := conf.Filename
	if name == "" {
		name = SetDefaults().Filename
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filepath.Join(conf.Path, name),
		MaxSize:    conf.RotateSize,
		MaxBackups: conf.RotateNum,
		MaxAge:     conf.KeepDays,
		LocalTime:  true,
		Compress:   true,
	})
}
