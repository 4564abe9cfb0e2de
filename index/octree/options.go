package octree

import (
	"log/slog"

	"github.com/hupe1980/geo3d/index"
	"github.com/hupe1980/geo3d/spgist"
)

const (
	// DefaultLeafCapacity is the default number of points a leaf page holds
	// before it splits.
	DefaultLeafCapacity = 32

	// DefaultMaxDepth is the default number of inner levels.
	DefaultMaxDepth = 32
)

// Options contains configuration options for the octree.
type Options struct {
	// LeafCapacity is the number of points a leaf holds before it splits.
	// Leaves at MaxDepth, or holding points no centroid can separate, grow
	// past it.
	LeafCapacity int

	// MaxDepth limits the number of inner levels.
	MaxDepth int

	// Centroid selects how split centroids are computed.
	Centroid spgist.Centroid

	// Logger receives split and configuration messages. Nil discards.
	Logger *slog.Logger

	// Metrics receives operational metrics. Nil discards.
	Metrics index.MetricsCollector
}

// DefaultOptions contains the default configuration options for the octree.
var DefaultOptions = Options{
	LeafCapacity: DefaultLeafCapacity,
	MaxDepth:     DefaultMaxDepth,
	Centroid:     spgist.CentroidMean,
}

// Option configures an octree.
type Option func(o *Options)

// WithLeafCapacity sets the leaf capacity.
func WithLeafCapacity(n int) Option {
	return func(o *Options) {
		o.LeafCapacity = n
	}
}

// WithMaxDepth sets the maximum depth.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = n
	}
}

// WithCentroid sets the centroid method.
func WithCentroid(c spgist.Centroid) Option {
	return func(o *Options) {
		o.Centroid = c
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
