package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// UseCaseEvent describes one finished service call.
type UseCaseEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

func (e UseCaseEvent) Succeeded() bool { return e.Err == nil }

// UseCaseObserver is told about every diary, profile and report call.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

// DefaultSlowUseCase is how long a call may take before it is logged at
// warn level. Rendering a month with an embedded font is the usual culprit.
const DefaultSlowUseCase = 2 * time.Second

type logUseCaseObserver struct {
	logger *zap.Logger
	slow   time.Duration
}

type LogObserverOption func(*logUseCaseObserver)

// WithSlowThreshold changes DefaultSlowUseCase. Zero disables slow warnings.
func WithSlowThreshold(d time.Duration) LogObserverOption {
	return func(o *logUseCaseObserver) { o.slow = d }
}

// NewLogUseCaseObserver logs one "service_use_case" entry per call: error
// level on failure, warn when slow, info otherwise.
func NewLogUseCaseObserver(logger *zap.Logger, opts ...LogObserverOption) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	o := &logUseCaseObserver{logger: logger, slow: DefaultSlowUseCase}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := []zap.Field{
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Succeeded()),
	}
	for k, v := range event.Fields {
		fields = append(fields, zap.Any(k, v))
	}

	switch {
	case event.Err != nil:
		o.logger.Error("service_use_case", append(fields, zap.Error(event.Err))...)
	case o.slow > 0 && event.Duration >= o.slow:
		o.logger.Warn("service_use_case", append(fields, zap.Duration("slow_threshold", o.slow))...)
	default:
		o.logger.Info("service_use_case", fields...)
	}
}

// firstObserver picks the first non-nil observer from a constructor's
// variadic tail.
func firstObserver(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe is deferred at the top of a use case with a pointer to its named
// error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, errp *error) {
	ev := UseCaseEvent{Name: name, StartedAt: startedAt, Duration: time.Since(startedAt), Fields: fields}
	if errp != nil {
		ev.Err = *errp
	}
	obs.ObserveUseCase(ctx, ev)
}
