// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Registry maps file extensions to codecs and detects codecs from stream
// headers.
//
// A Registry is meant to be populated during initialization and then only
// read; it is nonetheless safe for concurrent use. It never holds any
// per-array state.
type Registry struct {
	mu     sync.RWMutex
	codecs []Codec
	byExt  map[string]Codec
}

// NewRegistry returns a Registry with the given codecs registered in order.
func NewRegistry(codecs ...Codec) (*Registry, error) {
	r := &Registry{byExt: make(map[string]Codec)}
	for _, c := range codecs {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds c, keyed by each of its extensions. Registering the same
// codec instance again is a no-op. It fails with ErrConflict if one of the
// extensions is already claimed by a different codec, or if a different
// codec with the same name is registered; in that case the Registry is
// left unchanged.
func (r *Registry) Register(c Codec) error {
	if c == nil {
		return fmt.Errorf("cannot register a nil codec")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.codecs {
		if existing == c {
			return nil
		}
		if existing.Name() == c.Name() {
			return fmt.Errorf("%w: a codec named %q is already registered", ErrConflict, c.Name())
		}
	}

	exts := make([]string, 0, len(c.Extensions()))
	for _, e := range c.Extensions() {
		ext := normalizeExt(e)
		if ext == "" {
			return fmt.Errorf("codec %q declares an empty extension", c.Name())
		}
		if other, ok := r.byExt[ext]; ok && other != c {
			return fmt.Errorf("%w: extension %q already claimed by codec %q", ErrConflict, ext, other.Name())
		}
		exts = append(exts, ext)
	}

	r.codecs = append(r.codecs, c)
	for _, ext := range exts {
		r.byExt[ext] = c
	}
	return nil
}

// Alias maps an additional extension to the registered codec named
// codecName. Aliasing an extension to the codec that already owns it is a
// no-op.
func (r *Registry) Alias(ext, codecName string) error {
	ext = normalizeExt(ext)
	if ext == "" {
		return fmt.Errorf("cannot alias an empty extension")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.lookup(codecName)
	if !ok {
		return fmt.Errorf("%w: no codec named %q", ErrUnsupportedFormat, codecName)
	}
	if other, ok := r.byExt[ext]; ok && other != c {
		return fmt.Errorf("%w: extension %q already claimed by codec %q", ErrConflict, ext, other.Name())
	}
	r.byExt[ext] = c
	return nil
}

// Resolve returns the codec claiming the extension of filenameOrExt, which
// can be a path ("dir/a.tensor"), a bare extension (".tensor") or an
// extension without dot ("tensor"). Matching is case-insensitive.
func (r *Registry) Resolve(filenameOrExt string) (Codec, error) {
	ext := filepath.Ext(filenameOrExt)
	if ext == "" && !strings.ContainsAny(filenameOrExt, `/\`) {
		ext = filenameOrExt
	}
	ext = normalizeExt(ext)

	r.mu.RLock()
	c, ok := r.byExt[ext]
	r.mu.RUnlock()
	if !ok || ext == "" {
		return nil, fmt.Errorf("%w: no codec for extension of %q", ErrUnsupportedFormat, filenameOrExt)
	}
	return c, nil
}

// Detect returns the first registered codec whose Probe accepts head.
func (r *Registry) Detect(head []byte) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.codecs {
		if c.Probe(head) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no codec recognizes the header", ErrUnsupportedFormat)
}

// Lookup returns the registered codec with the given name.
func (r *Registry) Lookup(name string) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

func (r *Registry) lookup(name string) (Codec, bool) {
	for _, c := range r.codecs {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Codecs returns the registered codecs, in registration order.
func (r *Registry) Codecs() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Codec, len(r.codecs))
	copy(out, r.codecs)
	return out
}

// Extensions returns all known extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
