package logger

import (
	"io"
	"os"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/huynhanx03/go-keybatch/pkg/settings"
)

const (
	defaultMaxSize    = 100 // megabytes
	defaultMaxBackups = 3
	defaultMaxAge     = 28 // days
)

// New builds a JSON zap logger from cfg. Output goes to stderr unless
// FileLogName is set, in which case it is written to a rotated file.
func New(cfg settings.Logger) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(orDefault(cfg.LogLevel, "info"))
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", cfg.LogLevel)
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig()),
		zapcore.AddSync(writer(cfg)),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func writer(cfg settings.Logger) io.Writer {
	if cfg.FileLogName == "" {
		return os.Stderr
	}
	return rotator(cfg)
}

// rotator returns the lumberjack writer for cfg with defaults applied.
func rotator(cfg settings.Logger) *lumberjack.Logger {
	l := &lumberjack.Logger{
		Filename:   cfg.FileLogName,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	}
	if l.MaxSize == 0 {
		l.MaxSize = defaultMaxSize
	}
	if l.MaxBackups == 0 {
		l.MaxBackups = defaultMaxBackups
	}
	if l.MaxAge == 0 {
		l.MaxAge = defaultMaxAge
	}
	return l
}

func encoderConfig() zapcore.EncoderConfig {
	enc := zap.NewProductionEncoderConfig()
	enc.TimeKey = "time"
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	return enc
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
