package storage

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/resilience"
)

type retryingStorage struct {
	next Storage
	cfg  resilience.RetryConfig
}

// WithRetry wraps s so that failed calls are retried per cfg. Caller errors
// such as an invalid path are returned at once.
func WithRetry(s Storage, cfg resilience.RetryConfig, log *logger.Logger) Storage {
	if log == nil {
		log = logger.Nop()
	}
	onRetry := cfg.OnRetry
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		log.Warn("storage call failed, retrying", logger.MergeWithError(
			logger.Fields("attempt", attempt, "backoff", backoff.String()), err))
		if onRetry != nil {
			onRetry(attempt, err, backoff)
		}
	}
	return &retryingStorage{next: s, cfg: cfg}
}

// Upload buffers reader so every attempt sends the complete object.
func (r *retryingStorage) Upload(ctx context.Context, path string, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return errors.IO("read upload body for "+path, err)
	}
	return resilience.RetryFunc(ctx, r.cfg, func() error {
		return r.next.Upload(ctx, path, bytes.NewReader(data))
	})
}

func (r *retryingStorage) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return resilience.Retry(ctx, r.cfg, func() (io.ReadCloser, error) {
		return r.next.Download(ctx, path)
	})
}

func (r *retryingStorage) Exists(ctx context.Context, path string) (bool, error) {
	return resilience.Retry(ctx, r.cfg, func() (bool, error) {
		return r.next.Exists(ctx, path)
	})
}

func (r *retryingStorage) URL(ctx context.Context, path string) (string, error) {
	return resilience.Retry(ctx, r.cfg, func() (string, error) {
		return r.next.URL(ctx, path)
	})
}
