package logger

import (
	"os"
	"strings"

	"bookcatalog/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger: stdout always, plus a rotated file when
// cfg.File is set.
func New(cfg config.LogConfig) *zap.Logger {
	return newZap(cfg, zapcore.AddSync(os.Stdout))
}

func newZap(cfg config.LogConfig, stdout zapcore.WriteSyncer) *zap.Logger {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var stdoutEncoder zapcore.Encoder
	if strings.EqualFold(cfg.Format, "console") {
		stdoutEncoder = zapcore.NewConsoleEncoder(encodeConfig)
	} else {
		stdoutEncoder = zapcore.NewJSONEncoder(encodeConfig)
	}

	level := ParseLevel(cfg.Level)
	cores := []zapcore.Core{zapcore.NewCore(stdoutEncoder, stdout, level)}

	if cfg.File != "" {
		rotationLog := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.FileMaxSize, // megabytes
			MaxBackups: cfg.FileMaxBackups,
			MaxAge:     cfg.FileMaxAge, // days
			Compress:   cfg.FileCompress,
		}
		fileEncoder := zapcore.NewJSONEncoder(encodeConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotationLog), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
