package board

import (
	"time"

	"github.com/kazz187/ticketboard/internal/eventbus"
)

const (
	DefaultWriteTimeout   = 10 * time.Second
	DefaultRefreshTimeout = 10 * time.Second
)

type Config struct {
	// WriteTimeout bounds a single remote status write.
	WriteTimeout time.Duration
	// RefreshTimeout bounds a single remote fetch.
	RefreshTimeout time.Duration
	Bus            *eventbus.Bus
	GraphSource    GraphSource

	ownsBus bool
}

type Option func(*Config)

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.WriteTimeout = d
	}
}

func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.RefreshTimeout = d
	}
}

// WithBus shares an existing bus instead of creating one per board.
func WithBus(bus *eventbus.Bus) Option {
	return func(c *Config) {
		c.Bus = bus
	}
}

func WithGraphSource(src GraphSource) Option {
	return func(c *Config) {
		c.GraphSource = src
	}
}

func newConfig(opts []Option) Config {
	cfg := Config{
		WriteTimeout:   DefaultWriteTimeout,
		RefreshTimeout: DefaultRefreshTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.RefreshTimeout <= 0 {
		cfg.RefreshTimeout = DefaultRefreshTimeout
	}
	if cfg.Bus == nil {
		cfg.Bus = eventbus.New()
		cfg.ownsBus = true
	}
	return cfg
}
