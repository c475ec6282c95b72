package logger

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	conf "github.com/freewebmovement/zz-account/config"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logger stays a no-op until InitLogger runs so library code can log unconditionally.
var logger = zap.NewNop()
var stag string

func InitLogger(cfg *conf.Config) error {
	encCfg := zapcore.EncoderConfig{
		TimeKey:        "date",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	stag = cfg.Common.Level
	var cores []zapcore.Core

	if cfg.LogInfo.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogInfo.Path), 0o700); err != nil {
			return err
		}
		lPath := fmt.Sprintf("%s_%%Y-%%m-%%d.log", cfg.LogInfo.Path)
		rotator, err := rotatelogs.New(
			lPath,
			rotatelogs.WithMaxAge(time.Duration(cfg.LogInfo.MaxAgeHour)*time.Hour),
			rotatelogs.WithRotationTime(time.Duration(cfg.LogInfo.RotateHour)*time.Hour))
		if err != nil {
			return err
		}

		level := zap.InfoLevel
		if stag == "alpha" {
			level = zap.DebugLevel
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	if stag == "alpha" {
		// stderr keeps stdout clean for command output
		cw := zapcore.AddSync(os.Stderr)
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), cw, zap.DebugLevel))
	}

	if len(cores) == 0 {
		logger = zap.NewNop()
		return nil
	}

	logger = zap.New(zapcore.NewTee(cores...)).Named(cfg.Common.ServiceName)
	logger.Debug("logging init file start")
	return nil
}

// L returns the underlying logger for structured fields.
func L() *zap.Logger {
	return logger
}

// Sync flushes buffered entries.
func Sync() {
	_ = logger.Sync()
}

func Debug(ctx ...interface{}) {
	logger.Debug("debug", zap.String("Debug", join(ctx)))
}

// Info is a convenient alias for Root().Info
func Info(ctx ...interface{}) {
	logger.Info("info", zap.String("Info", join(ctx)))
}

// Warn is a convenient alias for Root().Warn
func Warn(ctx ...interface{}) {
	logger.Warn("warn", zap.String("Warn", join(ctx)))
}

// Error is a convenient alias for Root().Error
func Error(ctx ...interface{}) {
	logger.Error("error", zap.String("Err", join(ctx)))
}

// Error handling
func HandleErr(err error) {
	if err != nil {
		Error(err)
	}
}

func join(ctx []interface{}) string {
	var b bytes.Buffer
	for _, str := range ctx {
		b.WriteString(fmt.Sprintf("%v", str))
	}
	return b.String()
}
