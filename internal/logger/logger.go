package logger

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log *zap.SugaredLogger
	mu  sync.RWMutex
)

// Init builds the global logger.
// env "development" uses the colored console encoder, anything else JSON.
func Init(env string) {
	level := zapcore.InfoLevel
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if env == "development" {
		level = zapcore.DebugLevel
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	} else {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), level)
	z := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.AddStacktrace(zapcore.ErrorLevel),
	).With(zap.String("service", "greentech"))

	Set(z)
}

// Set replaces the global logger. Tests use it with zaptest/observer cores.
func Set(z *zap.Logger) {
	mu.Lock()
	log = z.Sugar()
	mu.Unlock()
}

// GetLogger returns the global logger, initialising a development one if needed.
func GetLogger() *zap.SugaredLogger {
	mu.RLock()
	l := log
	mu.RUnlock()
	if l == nil {
		Init("development")
		mu.RLock()
		l = log
		mu.RUnlock()
	}
	return l
}

// Sync flushes buffered entries. Call it before exit.
func Sync() {
	_ = GetLogger().Sync()
}

func Debug(msg string, args ...any) {
	GetLogger().Debugw(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Infow(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warnw(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Errorw(msg, args...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, args ...any) {
	GetLogger().Fatalw(msg, args...)
}

// With returns a child logger carrying the given key/value pairs.
func With(args ...any) *zap.SugaredLogger {
	return GetLogger().With(args...)
}

func WithError(err error) *zap.SugaredLogger {
	return GetLogger().With("error", err)
}

// HTTPLog logs a finished request.
func HTTPLog(method, path string, status int, duration time.Duration, size int) {
	GetLogger().Infow("http request",
		"method", method,
		"path", path,
		"status", status,
		"duration", duration,
		"size_bytes", size,
	)
}

// JobLog logs the outcome of a background or command-line job.
func JobLog(job, operation string, err error, args ...any) {
	fields := append([]any{"job", job, "operation", operation}, args...)
	if err != nil {
		fields = append(fields, "error", err)
		GetLogger().Errorw("job failed", fields...)
		return
	}
	GetLogger().Infow("job completed", fields...)
}
