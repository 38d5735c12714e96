// Package resilience retries transient failures with exponential backoff.
//
// Storage backends use it to survive flaky object stores:
//
//	err := resilience.RetryFunc(ctx, resilience.DefaultRetryConfig(), func() error {
//	    return store.Upload(ctx, path, bytes.NewReader(data))
//	})
//
// Errors whose code marks a caller mistake (invalid input, unknown
// identifiers and the like) are never retried.
package resilience
