// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	OutputStdout = "stdout"
	OutputFile   = "file"
	OutputBoth   = "both"

	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu    sync.RWMutex
	once  sync.Once
	base  *zap.Logger
	sugar *zap.SugaredLogger
)

// ProviderSet is the Wire provider set for the log package.
var ProviderSet = wire.NewSet(ProvideLogger)

// ProvideLogger 初始化全局日志并返回 Logger
func ProvideLogger(conf *Conf) (*Logger, error) {
	if err := Init(conf); err != nil {
		return nil, err
	}
	return &Logger{Log: GetLogger()}, nil
}

// Conf holds logger configuration options.
type Conf struct {
	Output     string // stdout, file or both
	Format     string // console or json
	Path       string
	Filename   string
	Level      string
	KeepDays   int // 日志保留天数
	RotateSize int // 单个日志文件最大大小（MB）
	RotateNum  int // 保留的日志文件数量
}

// SetDefaults 返回默认配置
func SetDefaults() *Conf {
	return &Conf{
		Output:     OutputStdout,
		Format:     FormatConsole,
		Path:       "./logs",
		Filename:   "platform.log",
		Level:      "INFO",
		KeepDays:   7,
		RotateSize: 100,
		RotateNum:  10,
	}
}

// SetDefaults fills empty fields in place
func (c *Conf) SetDefaults() {
	def := SetDefaults()
	if c.Output == "" {
		c.Output = def.Output
	}
	if c.Format == "" {
		c.Format = def.Format
	}
	if c.Path == "" {
		c.Path = def.Path
	}
	if c.Filename == "" {
		c.Filename = def.Filename
	}
	if c.Level == "" {
		c.Level = def.Level
	}
	if c.KeepDays <= 0 {
		c.KeepDays = def.KeepDays
	}
	if c.RotateSize <= 0 {
		c.RotateSize = def.RotateSize
	}
	if c.RotateNum <= 0 {
		c.RotateNum = def.RotateNum
	}
}

func (c *Conf) Validate() error {
	switch c.Output {
	case "", OutputStdout:
	case OutputFile, OutputBoth:
		if c.Path == "" {
			return fmt.Errorf("log path is required when output is %q", c.Output)
		}
	default:
		return fmt.Errorf("unsupported log output %q", c.Output)
	}
	switch c.Format {
	case "", FormatConsole, FormatJSON:
	default:
		return fmt.Errorf("unsupported log format %q", c.Format)
	}
	if _, ok := parseLogLevel(c.Level); !ok && c.Level != "" {
		return fmt.Errorf("unsupported log level %q", c.Level)
	}
	return nil
}

type Logger struct {
	Log *zap.SugaredLogger
}

// NewLog builds a logger from conf and installs it as the package logger.
func NewLog(conf *Conf) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid log config: %w", err)
	}

	level, _ := parseLogLevel(conf.Level)
	core := zapcore.NewCore(newEncoder(conf.Format), newWriteSyncer(conf), level)
	newLogger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1), zap.AddStacktrace(zapcore.ErrorLevel))

	mu.Lock()
	base = newLogger
	sugar = newLogger.Sugar()
	mu.Unlock()

	sugar.Debugw("log initialized",
		"output", conf.Output,
		"format", conf.Format,
		"level", level.String(),
	)
	return newLogger, nil
}

func Init(conf *Conf) error {
	_, err := NewLog(conf)
	return err
}

// GetLogger returns the package sugared logger, falling back to stdout defaults.
func GetLogger() *zap.SugaredLogger {
	return current()
}

// With returns a child logger carrying the given fields.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return current().With(keysAndValues...)
}

// Sync flushes buffered log entries.
func Sync() error {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l == nil {
		return nil
	}
	// stdout sync returns EINVAL on some platforms
	_ = l.Sync()
	return nil
}

func current() *zap.SugaredLogger {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	if s != nil {
		return s
	}
	once.Do(func() {
		mu.RLock()
		ready := sugar != nil
		mu.RUnlock()
		if !ready {
			_ = Init(SetDefaults())
		}
	})
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func newWriteSyncer(conf *Conf) zapcore.WriteSyncer {
	switch conf.Output {
	case OutputFile:
		return getFileLogWriter(conf)
	case OutputBoth:
		return zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout), getFileLogWriter(conf))
	default:
		return zapcore.AddSync(os.Stdout)
	}
}

func newEncoder(format string) zapcore.Encoder {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.MessageKey = "msg"
	encoderConfig.EncodeDuration = zapcore.MillisDurationEncoder
	encoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	if format == FormatJSON {
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		encoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
		return zapcore.NewJSONEncoder(encoderConfig)
	}
	encoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(time.DateTime))
	}
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(encoderConfig)
}

// parseLogLevel is case-insensitive; unknown levels map to info.
func parseLogLevel(level string) (zapcore.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel, true
	case "INFO":
		return zapcore.InfoLevel, true
	case "WARN", "WARNING":
		return zapcore.WarnLevel, true
	case "ERROR":
		return zapcore.ErrorLevel, true
	case "FATAL":
		return zapcore.FatalLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}
