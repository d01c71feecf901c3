package recodex

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	seed       int64
	oversample int

	logger     *zap.Logger
	metricsReg prometheus.Registerer
}

// WithSeed makes cold-start sampling reproducible. Zero seeds from the clock.
func WithSeed(seed int64) Option {
	return optionFunc(func(c *engineConfig) {
		c.seed = seed
	})
}

// WithOversample sets how many candidates each recommender contributes to a
// hybrid blend (at least top N). The default is 10.
func WithOversample(n int) Option {
	return optionFunc(func(c *engineConfig) {
		c.oversample = n
	})
}

// WithLogger sets a zap logger for build and cold-start events.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithPrometheus registers engine metrics with the given registerer.
// Registering several engines against one registerer is allowed.
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}
