package rtree

import (
	"log/slog"

	"github.com/hupe1980/geo3d/gist"
	"github.com/hupe1980/geo3d/index"
)

const (
	// DefaultMaxEntries is the default node capacity.
	DefaultMaxEntries = 32

	// MinMaxEntries is the smallest accepted node capacity.
	MinMaxEntries = 4
)

// Options contains configuration options for the R-tree.
type Options struct {
	// OpClass selects the operator class of the keys.
	OpClass gist.OpClass

	// MaxEntries is the number of entries a node holds before it splits.
	MaxEntries int

	// Logger receives split and configuration messages. Nil discards.
	Logger *slog.Logger

	// Metrics receives operational metrics. Nil discards.
	Metrics index.MetricsCollector
}

// DefaultOptions contains the default configuration options for the R-tree.
var DefaultOptions = Options{
	OpClass:    gist.OpClassBox,
	MaxEntries: DefaultMaxEntries,
}

// Option configures an R-tree.
type Option func(o *Options)

// WithOpClass sets the operator class.
func WithOpClass(c gist.OpClass) Option {
	return func(o *Options) {
		o.OpClass = c
	}
}

// WithMaxEntries sets the node capacity.
func WithMaxEntries(n int) Option {
	return func(o *Options) {
		o.MaxEntries = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m index.MetricsCollector) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}
