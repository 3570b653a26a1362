package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	sugar  = zap.NewNop().Sugar()
	closer = func() error { return nil }
)

// Init builds the process-wide logger. format is "json" or "console".
func Init(level string, format string) error {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	if format == "console" {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	Set(base)
	return nil
}

// Set swaps the underlying zap logger. Tests use it with zap.NewNop or an observer core.
func Set(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	sugar = l.Sugar()
	closer = l.Sync
}

// Sync flushes buffered entries.
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	return closer()
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debug(msg string, keysAndValues ...any) {
	get().Debugw(msg, normalize(keysAndValues)...)
}

func Info(msg string, keysAndValues ...any) {
	get().Infow(msg, normalize(keysAndValues)...)
}

func Warn(msg string, keysAndValues ...any) {
	get().Warnw(msg, normalize(keysAndValues)...)
}

func Error(msg string, keysAndValues ...any) {
	get().Errorw(msg, normalize(keysAndValues)...)
}

// normalize turns a lone trailing value (usually an error) into an "error" pair
// so call sites like logger.Error("Repo:Op", err) stay valid key/value input.
func normalize(kv []any) []any {
	if len(kv)%2 == 0 {
		return kv
	}
	out := make([]any, 0, len(kv)+1)
	out = append(out, kv[:len(kv)-1]...)
	return append(out, "error", kv[len(kv)-1])
}
