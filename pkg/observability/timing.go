package observability

import (
	"log/slog"
	"time"
)

// Timer tracks the duration of an operation.
type Timer struct {
	operation string
	start     time.Time
	logger    *slog.Logger
}

// StartTimer creates a new timer for the given operation.
func StartTimer(operation string) *Timer {
	return &Timer{
		operation: operation,
		start:     time.Now(),
	}
}

// WithLogger adds a logger to the timer for automatic logging on stop.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// StopWithError logs the operation duration and its outcome.
func (t *Timer) StopWithError(err error) time.Duration {
	duration := time.Since(t.start)
	if t.logger == nil {
		return duration
	}

	if err != nil {
		t.logger.Debug("operation failed",
			OperationKey, t.operation,
			DurationKey, duration.Milliseconds(),
			ErrorKey, err.Error(),
		)
	} else {
		t.logger.Debug("operation completed",
			OperationKey, t.operation,
			DurationKey, duration.Milliseconds(),
		)
	}
	return duration
}

// TimeOperationResult times fn and logs how it went.
func TimeOperationResult[T any](logger *slog.Logger, operation string, fn func() (T, error)) (T, error) {
	timer := StartTimer(operation).WithLogger(logger)

	result, err := fn()
	timer.StopWithError(err)
	return result, err
}
