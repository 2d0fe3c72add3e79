// Package options configures the storage engine. The engine's only
// intrinsic configuration surface is the data directory: segment naming
// (data_<N>), the record format, and the compaction threshold are fixed by
// the design and are deliberately not exposed here (see
// compaction.Threshold).
package options

import "strings"

// Options holds the configuration for an engine instance.
type Options struct {
	// DataDir is the directory containing the segment files (data_<N>).
	DataDir string
}

// OptionFunc mutates an Options value being built.
type OptionFunc func(*Options)

// WithDataDir sets the data directory. Empty or whitespace-only values are
// ignored, leaving the current value (normally the default) in place.
func WithDataDir(directory string) OptionFunc {
	return func(o *Options) {
		directory = strings.TrimSpace(directory)
		if directory != "" {
			o.DataDir = directory
		}
	}
}

// Apply builds an Options value starting from NewDefaultOptions() with
// every opt applied in order.
func Apply(opts ...OptionFunc) Options {
	o := NewDefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
