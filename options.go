// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayio

import (
	"io"
	"log/slog"

	"github.com/nlpodyssey/arrayio/codec"
)

// Option configures an Array.
type Option func(*options)

type options struct {
	registry *codec.Registry
	logger   *slog.Logger
	mmap     bool
}

func newOptions(opts []Option) options {
	o := options{
		mmap: true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = DefaultRegistry()
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
	return o
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithRegistry sets the codec registry used to resolve file formats, in
// place of DefaultRegistry.
func WithRegistry(r *codec.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithLogger sets the logger receiving debug records about codec
// resolution, loading and saving. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMmap enables or disables memory-mapped reads during Load, where the
// platform supports them. It is enabled by default.
func WithMmap(enabled bool) Option {
	return func(o *options) {
		o.mmap = enabled
	}
}
