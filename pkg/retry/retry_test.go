package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "albumdl/pkg/errors"
	"albumdl/pkg/logger"
)

func TestExponentialBackoff(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.0, // No jitter for predictable testing
	}

	tests := []struct {
		attempt     int
		expected    time.Duration
		description string
	}{
		{1, 100 * time.Millisecond, "First attempt"},
		{2, 200 * time.Millisecond, "Second attempt"},
		{3, 400 * time.Millisecond, "Third attempt"},
		{4, 800 * time.Millisecond, "Fourth attempt"},
		{5, 1 * time.Second, "Fifth attempt (capped at max)"},
		{6, 1 * time.Second, "Sixth attempt (still capped)"},
	}

	for _, test := range tests {
		t.Run(test.description, func(t *testing.T) {
			delay := backoff.NextDelay(test.attempt)
			if delay != test.expected {
				t.Errorf("Expected delay %v, got %v", test.expected, delay)
			}
		})
	}
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	backoff := &ExponentialBackoff{
		BaseDelay:    100 * time.Millisecond,
		MaxDelay:     1 * time.Second,
		Multiplier:   2.0,
		JitterFactor: 0.3,
	}

	// Test that jitter adds randomness
	delays := make(map[time.Duration]bool)
	for i := 0; i < 10; i++ {
		delay := backoff.NextDelay(2)
		delays[delay] = true
	}

	if len(delays) < 2 {
		t.Error("Expected multiple different delays with jitter, but got consistent delays")
	}
}

func TestRetryWithSuccess(t *testing.T) {
	attempts := 0
	op := func() error {
		attempts++
		if attempts < 3 {
			return errors.New("temporary error")
		}
		return nil
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     RetryAll,
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	}

	err := Do(op, cfg)
	if err != nil {
		t.Errorf("Expected success after retries, got error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
}

func TestRetryBound(t *testing.T) {
	// An always-failing operation is attempted exactly MaxAttempts times,
	// and exactly MaxAttempts-1 retry-log events precede the error.
	attempts := 0
	op := func() error {
		attempts++
		return errors.New("persistent error")
	}

	log := logger.NewTestLogger()
	cfg := &Config{
		MaxAttempts: 10,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     RetryAll,
		Context:     context.Background(),
		Logger:      log,
	}

	err := Do(op, cfg)
	if err == nil {
		t.Fatal("Expected error when max attempts exceeded")
	}
	if attempts != 10 {
		t.Errorf("Expected 10 attempts, got %d", attempts)
	}

	retryLogs := 0
	for _, msg := range log.GetMessagesByLevel("WARN") {
		if msg.Message == "retrying operation" {
			retryLogs++
		}
	}
	if retryLogs != 9 {
		t.Errorf("Expected 9 retry-log events, got %d", retryLogs)
	}
}

func TestRetryAllRetriesTerminalClasses(t *testing.T) {
	// The default predicate retries even errors classified as terminal
	attempts := 0
	op := func() error {
		attempts++
		return &errs.Error{Type: errs.ErrorTypeNotFound, Message: "no such album", Code: 404}
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     RetryAll,
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	}

	err := Do(op, cfg)
	if err == nil {
		t.Fatal("Expected error")
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts under RetryAll, got %d", attempts)
	}
}

func TestClassifyRetryIfStopsOnTerminalError(t *testing.T) {
	attempts := 0
	notFound := &errs.Error{Type: errs.ErrorTypeNotFound, Message: "gone", Code: 404}
	op := func() error {
		attempts++
		return notFound
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     ClassifyRetryIf,
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	}

	err := Do(op, cfg)
	if !errors.Is(err, notFound) {
		t.Errorf("Expected the original error back, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt for a terminal error, got %d", attempts)
	}
}

func TestRetryCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	op := func() error {
		attempts++
		return errors.New("failing")
	}

	cfg := &Config{
		MaxAttempts: 5,
		Backoff:     &ConstantBackoff{Delay: 50 * time.Millisecond},
		RetryIf:     RetryAll,
		Context:     ctx,
		Logger:      logger.NewTestLogger(),
	}

	err := Do(op, cfg)
	if err == nil {
		t.Fatal("Expected cancellation error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("Expected 1 attempt before cancellation, got %d", attempts)
	}
}

func TestDoWithResult(t *testing.T) {
	attempts := 0
	op := func() (string, error) {
		attempts++
		if attempts < 2 {
			return "", errors.New("temporary error")
		}
		return "result", nil
	}

	cfg := &Config{
		MaxAttempts: 3,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     RetryAll,
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	}

	result, err := DoWithResult(op, cfg)
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if result != "result" {
		t.Errorf("Expected %q, got %q", "result", result)
	}
}

func TestRetrierWithMaxAttempts(t *testing.T) {
	base := NewRetrier(&Config{
		MaxAttempts: 10,
		Backoff:     &ConstantBackoff{Delay: time.Millisecond},
		RetryIf:     RetryAll,
		Context:     context.Background(),
		Logger:      logger.NewTestLogger(),
	})

	attempts := 0
	err := base.WithMaxAttempts(2).Do(func() error {
		attempts++
		return errors.New("failing")
	})

	if err == nil {
		t.Fatal("Expected error")
	}
	if attempts != 2 {
		t.Errorf("Expected 2 attempts, got %d", attempts)
	}
}
