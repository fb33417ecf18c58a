// pkg/transaction/config.go
package transaction

import (
	"time"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/xrpl-sdk/pkg/cache"
)

const (
	DefaultLedgerOffset     uint32 = 20
	DefaultPollInterval            = time.Second
	DefaultMaxAttempts             = 20
	DefaultTransientRetries        = 3
	DefaultRetryInterval           = 200 * time.Millisecond
)

// Config controls autofill and reliable submission.
type Config struct {
	// Fee in drops used by Autofill instead of asking the node. Empty means ask.
	Fee string
	// LedgerOffset is added to the latest validated ledger index to compute
	// LastLedgerSequence.
	LedgerOffset uint32
	// PollInterval is the wait before each lookup.
	PollInterval time.Duration
	// MaxAttempts bounds polling of transactions without LastLedgerSequence.
	MaxAttempts int
	// TransientRetries is how many times a poll step failing with a transient
	// error is retried before giving up.
	TransientRetries int
	// RetryInterval is the first backoff delay between transient retries.
	RetryInterval time.Duration

	Logger       *zap.Logger
	Metrics      *Metrics
	Cache        *cache.LookupCache
	OnTransition func(hash string, from, to State)
}

// DefaultConfig returns the defaults used when no option overrides them.
func DefaultConfig() Config {
	return Config{
		LedgerOffset:     DefaultLedgerOffset,
		PollInterval:     DefaultPollInterval,
		MaxAttempts:      DefaultMaxAttempts,
		TransientRetries: DefaultTransientRetries,
		RetryInterval:    DefaultRetryInterval,
		Logger:           zap.NewNop(),
	}
}

// Option adjusts a Config.
type Option func(*Config)

// WithFee makes Autofill use fee instead of querying the node.
func WithFee(fee string) Option {
	return func(c *Config) { c.Fee = fee }
}

func WithLedgerOffset(offset uint32) Option {
	return func(c *Config) { c.LedgerOffset = offset }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Config) { c.PollInterval = d }
}

func WithMaxAttempts(n int) Option {
	return func(c *Config) { c.MaxAttempts = n }
}

func WithTransientRetries(n int, interval time.Duration) Option {
	return func(c *Config) {
		c.TransientRetries = n
		c.RetryInterval = interval
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithCache memoizes validated lookups.
func WithCache(c *cache.LookupCache) Option {
	return func(cfg *Config) { cfg.Cache = c }
}

// WithTransitionHook calls fn on every state change of a submission.
func WithTransitionHook(fn func(hash string, from, to State)) Option {
	return func(c *Config) { c.OnTransition = fn }
}

func newConfig(opts []Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.LedgerOffset == 0 {
		cfg.LedgerOffset = DefaultLedgerOffset
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.TransientRetries < 0 {
		cfg.TransientRetries = 0
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}
	return cfg
}
