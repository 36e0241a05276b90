package logger

import (
	"os"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"tradebridge/conf"
)

// 基于zap的全局日志，支持lumberjack日志切割
// 未调用Init时退化为控制台输出，方便单元测试直接使用

var (
	once sync.Once
	log  *zap.Logger
)

func Init(cfg conf.LogConfig) {
	once.Do(func() {
		log = newLogger(cfg)
	})
}

func newLogger(cfg conf.LogConfig) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = "2006-01-02 15:04:05.000"
	}
	encCfg.EncodeTime = zapcore.TimeEncoder(func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(timeFormat))
	})
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var cores []zapcore.Core
	if cfg.FileName != "" {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.FileName,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
			LocalTime:  cfg.LocalTime,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), w, level))
	}
	if cfg.Console || cfg.FileName == "" {
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(os.Stdout), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
}

func active() *zap.Logger {
	if log == nil {
		// 默认控制台日志
		log = newLogger(conf.LogConfig{Console: true})
	}
	return log
}

// Pair 构造一个结构化日志字段
func Pair(key string, value interface{}) zap.Field {
	return zap.Any(key, value)
}

func Debug(msg string, fields ...zap.Field) {
	active().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	active().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	active().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	active().Error(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	active().Fatal(msg, fields...)
}

func Debugf(format string, args ...interface{}) {
	active().Sugar().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	active().Sugar().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	active().Sugar().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	active().Sugar().Errorf(format, args...)
}

// Sync 刷新缓冲区，进程退出前调用
func Sync() {
	if log != nil {
		_ = log.Sync()
	}
}
