// Package retry provides bounded retry with exponential backoff for
// absorbing transient failures in upstream API calls.
//
// Every fetch performed by the downloader flows through retry.Do: the
// operation is attempted up to MaxAttempts times (10 by default), each
// failed attempt is logged with its attempt number and failure reason,
// and the delay between attempts grows exponentially with jitter.
//
// Basic usage:
//
//	err := retry.Do(func() error {
//		return client.Get(url)
//	}, nil)
//
//	// Custom configuration
//	cfg := &retry.Config{
//		MaxAttempts: 5,
//		Backoff: &retry.ExponentialBackoff{
//			BaseDelay:    2 * time.Second,
//			MaxDelay:     30 * time.Second,
//			Multiplier:   2.0,
//			JitterFactor: 0.1,
//		},
//		RetryIf: retry.RetryAll,
//		Logger:  logger.GetLogger(),
//	}
//	err := retry.Do(operation, cfg)
//
// Retry predicates:
//
// The default predicate is RetryAll, which retries every error until the
// attempt budget is exhausted. ClassifyRetryIf is available for callers
// that want to stop early on errors the transport classified as terminal
// (not found, parsing).
package retry
