package capability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/lexscan/internal/logger"
	"github.com/ppiankov/lexscan/internal/metrics"
)

// Fallback reasons, used as metric labels
const (
	ReasonDisabled = "disabled"
	ReasonTimeout  = "timeout"
	ReasonError    = "error"
)

// Outcome is the result of a guarded capability call
type Outcome[T any] struct {
	Value    T
	FellBack bool
	Reason   string // Empty unless FellBack
	Cause    error  // *Error when FellBack
}

// WithFallback runs primary bounded by timeout and returns its value.
// If primary is nil, fails, panics or times out, the value of fallback is
// returned instead; the failure is logged and counted but never returned.
func WithFallback[T any](
	ctx context.Context,
	name Name,
	timeout time.Duration,
	primary func(context.Context) (T, error),
	fallback func() T,
) Outcome[T] {
	if primary == nil {
		return fellBack(ctx, name, ReasonDisabled, Unavailable(name, ErrNotConfigured), fallback)
	}

	callCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	value, err := safeCall(callCtx, primary)
	if err == nil {
		return Outcome[T]{Value: value}
	}

	reason := ReasonError
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		reason = ReasonTimeout
	}
	return fellBack(ctx, name, reason, Unavailable(name, err), fallback)
}

func safeCall[T any](ctx context.Context, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx)
}

func fellBack[T any](ctx context.Context, name Name, reason string, cause error, fallback func() T) Outcome[T] {
	metrics.CapabilityFallbacksTotal.WithLabelValues(string(name), reason).Inc()

	log := logger.FromContext(ctx)
	if reason == ReasonDisabled {
		log.Debug("Capability not configured, using fallback", zap.String("capability", string(name)))
	} else {
		log.Warn("Capability failed, using fallback",
			zap.String("capability", string(name)),
			zap.String("reason", reason),
			zap.Error(cause),
		)
	}

	return Outcome[T]{
		Value:    fallback(),
		FellBack: true,
		Reason:   reason,
		Cause:    cause,
	}
}
