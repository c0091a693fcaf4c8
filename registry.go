// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayio

import (
	"fmt"
	"sync"

	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/codec/tensor"
	"github.com/nlpodyssey/arrayio/config"
)

// DefaultRegistry returns the registry used by arrays that are not given
// one with WithRegistry. It holds the tensor codec, and is shared: codecs
// registered to it are visible to every such array.
func DefaultRegistry() *codec.Registry {
	return defaultRegistry()
}

var defaultRegistry = sync.OnceValue(func() *codec.Registry {
	r, err := codec.NewRegistry(tensor.New())
	if err != nil {
		panic(fmt.Sprintf("arrayio: default registry: %v", err))
	}
	return r
})

// NewRegistry returns a new registry holding the built-in codecs, with
// the extension aliases of cfg applied. A nil cfg is the same as
// config.Default().
func NewRegistry(cfg *config.Config) (*codec.Registry, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := codec.NewRegistry(tensor.New())
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.CodecNames() {
		for _, ext := range cfg.Codecs[name].Extensions {
			if err := r.Alias(ext, name); err != nil {
				return nil, fmt.Errorf("failed to configure codec %q: %w", name, err)
			}
		}
	}
	return r, nil
}
