package util

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
)

// ErrTimeout is returned by FirstOf when the deadline wins the race.
var ErrTimeout = errors.New("operation timed out")

// FirstOf races op against a timeout on clock and returns whichever resolves first.
// The losing operation is not aborted; its result is discarded once it completes.
func FirstOf[T any](ctx context.Context, clock clockwork.Clock, timeout time.Duration, op func(ctx context.Context) (T, error)) (T, error) {
	type outcome struct {
		value T
		err   error
	}

	done := make(chan outcome, 1)
	go func() {
		value, err := op(ctx)
		done <- outcome{value: value, err: err}
	}()

	timer := clock.NewTimer(timeout)
	defer timer.Stop()

	var zero T
	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.Chan():
		return zero, errors.Wrapf(ErrTimeout, "after %s", FormatDuration(timeout))
	case <-ctx.Done():
		return zero, errors.WithStack(ctx.Err())
	}
}

// FormatBytes formats bytes into human readable format.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	const units = "KMGTPEZY"
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit && exp < len(units)-1; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), units[exp])
}

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}
