package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestErrorClass_String(t *testing.T) {
	tests := []struct {
		class    ErrorClass
		expected string
	}{
		{ErrorTransient, "transient"},
		{ErrorInvalid, "invalid"},
		{ErrorFatal, "fatal"},
		{ErrorClass(999), "unknown"},
	}

	for _, test := range tests {
		t.Run(test.expected, func(t *testing.T) {
			result := test.class.String()
			if result != test.expected {
				t.Errorf("expected %s, got %s", test.expected, result)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"rate limited", ErrRateLimited, true},
		{"shutting down", ErrShuttingDown, true},
		{"context deadline exceeded", context.DeadlineExceeded, true},
		{"context canceled", context.Canceled, true},
		{"nil element", ErrNilElement, false},
		{"fatal error", ErrResourceExhausted, false},
		{"timeout in message", fmt.Errorf("operation timeout occurred"), true},
		{"busy in message", fmt.Errorf("resource busy"), true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsTransient(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid config", ErrInvalidConfig, true},
		{"missing config", ErrMissingConfig, true},
		{"resource exhausted", ErrResourceExhausted, true},
		{"quota exceeded", ErrQuotaExceeded, true},
		{"rate limited", ErrRateLimited, false},
		{"nil element", ErrNilElement, false},
		{"fatal in message", fmt.Errorf("fatal system error occurred"), true},
		{"panic in message", fmt.Errorf("panic: system failure"), true},
		{"classified fatal", &ClassifiedError{Class: ErrorFatal, Err: fmt.Errorf("test")}, true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsFatal(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestIsInvalid(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"invalid capacity", ErrInvalidCapacity, true},
		{"nil element", ErrNilElement, true},
		{"buffer closed", ErrBufferClosed, true},
		{"rate limited", ErrRateLimited, false},
		{"fatal error", ErrResourceExhausted, false},
		{"classified invalid", &ClassifiedError{Class: ErrorInvalid, Err: fmt.Errorf("test")}, true},
		{"classified transient", &ClassifiedError{Class: ErrorTransient, Err: fmt.Errorf("test")}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := IsInvalid(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v for error: %v", test.expected, result, test.err)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorClass
	}{
		{"nil error", nil, ErrorTransient},
		{"transient", ErrRateLimited, ErrorTransient},
		{"fatal", ErrResourceExhausted, ErrorFatal},
		{"invalid", ErrNilElement, ErrorInvalid},
		{"unknown defaults to transient", fmt.Errorf("some error"), ErrorTransient},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := Classify(test.err)
			if result != test.expected {
				t.Errorf("expected %v, got %v", test.expected, result)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if Wrap(nil, "Buffer", "TryEnqueue", "validation") != nil {
			t.Error("wrapping nil should return nil")
		}
	})

	t.Run("wraps with standard format", func(t *testing.T) {
		base := fmt.Errorf("boom")
		err := Wrap(base, "Buffer", "TryEnqueue", "validation")
		expected := "Buffer.TryEnqueue: validation failed: boom"
		if err.Error() != expected {
			t.Errorf("expected %q, got %q", expected, err.Error())
		}
		if !errors.Is(err, base) {
			t.Error("wrapped error should match base with errors.Is")
		}
	})
}

func TestWrapClassified(t *testing.T) {
	base := ErrBufferClosed

	tests := []struct {
		name     string
		wrap     func(error, string, string, string) error
		expected ErrorClass
	}{
		{"WrapTransient", WrapTransient, ErrorTransient},
		{"WrapInvalid", WrapInvalid, ErrorInvalid},
		{"WrapFatal", WrapFatal, ErrorFatal},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.wrap(base, "Buffer", "Enqueue", "state check")
			var ce *ClassifiedError
			if !errors.As(err, &ce) {
				t.Fatal("expected ClassifiedError")
			}
			if ce.Class != test.expected {
				t.Errorf("expected class %v, got %v", test.expected, ce.Class)
			}
			if ce.Component != "Buffer" || ce.Operation != "Enqueue" {
				t.Errorf("unexpected context: %s.%s", ce.Component, ce.Operation)
			}
			if !errors.Is(err, base) {
				t.Error("classified error should unwrap to base")
			}
			if !strings.Contains(err.Error(), "state check failed") {
				t.Errorf("unexpected message: %s", err.Error())
			}
		})
	}

	t.Run("nil error returns nil", func(t *testing.T) {
		if WrapInvalid(nil, "Buffer", "Enqueue", "state check") != nil {
			t.Error("wrapping nil should return nil")
		}
	})
}

func TestRetryConfig_ShouldRetry(t *testing.T) {
	cfg := DefaultRetryConfig()

	tests := []struct {
		name     string
		err      error
		attempt  int
		expected bool
	}{
		{"nil error", nil, 0, false},
		{"transient under limit", ErrRateLimited, 1, true},
		{"transient at limit", ErrRateLimited, 3, false},
		{"invalid never retried", ErrNilElement, 0, false},
		{"fatal never retried", ErrResourceExhausted, 0, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := cfg.ShouldRetry(test.err, test.attempt)
			if result != test.expected {
				t.Errorf("expected %v, got %v", test.expected, result)
			}
		})
	}

	t.Run("specific retryable errors", func(t *testing.T) {
		cfg := DefaultRetryConfig()
		cfg.RetryableErrors = []error{ErrRateLimited}

		if !cfg.ShouldRetry(ErrRateLimited, 0) {
			t.Error("listed error should retry")
		}
		if cfg.ShouldRetry(ErrShuttingDown, 0) {
			t.Error("unlisted error should not retry")
		}
	})
}

func TestRetryConfig_ToRetryConfig(t *testing.T) {
	cfg := RetryConfig{
		MaxRetries:    4,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      2 * time.Second,
		BackoffFactor: 3.0,
	}

	converted := cfg.ToRetryConfig()

	if converted.MaxAttempts != 5 {
		t.Errorf("expected 5 total attempts, got %d", converted.MaxAttempts)
	}
	if converted.InitialDelay != cfg.InitialDelay {
		t.Errorf("expected initial delay %v, got %v", cfg.InitialDelay, converted.InitialDelay)
	}
	if converted.Multiplier != cfg.BackoffFactor {
		t.Errorf("expected multiplier %v, got %v", cfg.BackoffFactor, converted.Multiplier)
	}
	if !converted.AddJitter {
		t.Error("expected jitter enabled")
	}
}

func TestRetryConfig_BackoffDelay(t *testing.T) {
	cfg := RetryConfig{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      1 * time.Second,
		BackoffFactor: 2.0,
	}

	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 100 * time.Millisecond},
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{4, 1 * time.Second}, // capped at MaxDelay
		{10, 1 * time.Second},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("attempt_%d", test.attempt), func(t *testing.T) {
			delay := cfg.BackoffDelay(test.attempt)
			if delay != test.expected {
				t.Errorf("attempt %d: expected %v, got %v", test.attempt, test.expected, delay)
			}
		})
	}
}
