package storage

import (
	"fmt"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/resilience"
)

// Factory creates a Storage implementation from configuration.
type Factory func(cfg Config, log *logger.Logger) (Storage, error)

var factories = make(map[string]Factory)

// RegisterFactory registers a storage backend factory for the given provider name.
// Backend packages call this in an init function.
func RegisterFactory(name string, f Factory) {
	factories[name] = f
}

// New creates the Storage selected by cfg.Provider. The backend package must
// have been imported so its factory is registered.
func New(cfg Config, log *logger.Logger) (Storage, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	l := log.WithComponent("storage")

	f, ok := factories[cfg.Provider]
	if !ok {
		return nil, errors.InvalidInput("provider", fmt.Sprintf("storage provider %q is not registered", cfg.Provider))
	}

	l.Debug("initializing storage", logger.Fields("provider", cfg.Provider))
	s, err := f(cfg, l)
	if err != nil {
		return nil, errors.IO("initialize "+cfg.Provider+" storage", err)
	}
	if cfg.MaxAttempts > 1 {
		retry := resilience.DefaultRetryConfig()
		retry.MaxAttempts = cfg.MaxAttempts
		if cfg.RetryBackoff > 0 {
			retry.InitialBackoff = cfg.RetryBackoff
		}
		s = WithRetry(s, retry, l)
	}
	return s, nil
}
