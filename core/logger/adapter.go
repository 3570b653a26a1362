package logger

import (
	"fmt"
	"os"
)

// QueueLogger satisfies the asynq.Logger interface on top of the shared logger.
type QueueLogger struct{}

func AsynqLogger() QueueLogger {
	return QueueLogger{}
}

func (QueueLogger) Debug(args ...any) { get().Debug(args...) }
func (QueueLogger) Info(args ...any)  { get().Info(args...) }
func (QueueLogger) Warn(args ...any)  { get().Warn(args...) }
func (QueueLogger) Error(args ...any) { get().Error(args...) }

func (QueueLogger) Fatal(args ...any) {
	get().Error(args...)
	_ = Sync()
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}
