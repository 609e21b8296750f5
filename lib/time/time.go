package time

import (
	"context"
	"time"

	"github.com/coachboard/playdiagram/lib/env"
)

// WithTimeout is context.WithTimeout with the timeout overridden by $PD_TIMEOUT.
// A non-positive timeout leaves ctx without a deadline.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	t := timeout
	if seconds, ok := env.Timeout(); ok {
		t = time.Duration(seconds) * time.Second
	}
	if t <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, t)
}
