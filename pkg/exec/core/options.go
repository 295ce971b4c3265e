package core

import (
	"context"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
)

type OptionKey string

const (
	WorkerOptionKey OptionKey = "worker_options"
	LoggerOptionKey OptionKey = "logger_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// WithWorkerOptions caps how many mapper bodies may execute at once in the
// parallel runner. Every element still gets its own worker; the cap only
// gates execution.
func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions)
	if ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

// DefaultWorkerMaxCount is the execution cap used when the context carries
// no worker options.
func DefaultWorkerMaxCount() int {
	return runtime.NumCPU()
}

// WithLogger installs a structured logger for worker lifecycle events
// (spawn, terminate, purge counts). Without one the runners stay silent.
func WithLogger(ctx context.Context, logger logrus.FieldLogger) context.Context {
	return context.WithValue(ctx, LoggerOptionKey, logger)
}

func GetLogger(ctx context.Context) logrus.FieldLogger {
	logger, ok := ctx.Value(LoggerOptionKey).(logrus.FieldLogger)
	if ok {
		return logger
	}
	return discardLogger
}

var discardLogger logrus.FieldLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()
