package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned when a remote backend cannot be reached
// (timeouts, refused or dropped connections).
var ErrNetwork = errors.New("network error")

// retryableError marks a transient failure.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

// Retryable marks err as transient. Retryable(nil) is nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable reports whether err, or an error it wraps, was marked with Retryable.
func IsRetryable(err error) bool {
	var re *retryableError
	return errors.As(err, &re)
}

// RetryPolicy bounds how often and how patiently a backend call is retried.
type RetryPolicy struct {
	Attempts int           // total calls, at least 1
	Delay    time.Duration // wait before the second call; doubles after each retry
}

// DefaultRetryPolicy makes three attempts, waiting 1s then 2s.
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: time.Second}

// Do calls fn until it succeeds, returns an error not marked Retryable, the
// attempts are used up, or ctx is done.
func (p RetryPolicy) Do(ctx context.Context, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var err error
	for i := range attempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
	return err
}
