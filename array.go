// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package arrayio persists typed multi-dimensional numeric arrays to
// files, through pluggable codecs.
//
// An Array is either memory-resident, built from an in-memory buffer with
// FromBuffer or FromSlice, or file-backed, opened with FromFile. Opening a
// file only reads its header: element type and shape are known right away,
// while the elements are loaded on first access (Load, Buffer, Get,
// GetAll, Save) and then kept in memory.
//
// Typed access goes through Get and GetAll, which convert the stored
// elements to the requested Go type when they differ (see buffer.Convert
// for the conversion rules).
package arrayio

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/dtype"
)

// Array is a typed, shaped collection of numeric elements, possibly backed
// by a file whose data is loaded lazily.
//
// Element type, shape and source file never change after construction.
// An Array is safe for concurrent use.
type Array struct {
	dt    dtype.ElementType
	shape buffer.Shape

	// Set for file-backed arrays only.
	filename string
	codec    codec.Codec
	header   codec.Header

	opts options

	mu     sync.Mutex
	loaded atomic.Bool
	data   buffer.Buffer
}

// FromBuffer returns a loaded, memory-resident Array holding b with the
// given shape. The buffer is not copied: ownership passes to the Array.
//
// It fails if the shape is invalid or its number of elements differs from
// b.Len().
func FromBuffer(b buffer.Buffer, shape buffer.Shape, opts ...Option) (*Array, error) {
	if err := codec.CheckArray(b.DType(), shape, b); err != nil {
		return nil, fmt.Errorf("invalid array: %w", err)
	}
	a := &Array{
		dt:    b.DType(),
		shape: shape.Clone(),
		opts:  newOptions(opts),
		data:  b,
	}
	a.loaded.Store(true)
	return a, nil
}

// FromSlice is a convenience wrapper around FromBuffer. When no shape is
// given, the Array is one-dimensional.
func FromSlice[T dtype.Element](data []T, shape ...int) (*Array, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	return FromBuffer(buffer.Of(data), shape)
}

// FromFile returns an unloaded Array backed by the file at path, reading
// only its header.
//
// The codec is chosen by the file extension. When no registered codec
// claims the extension, or the claiming codec does not recognize the
// header while another one does, the codec is detected from the first
// codec.ProbeSize bytes of the file.
func FromFile(path string, opts ...Option) (*Array, error) {
	o := newOptions(opts)

	src, err := openSource(path, false, o.logger)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	head := make([]byte, codec.ProbeSize)
	n, err := io.ReadFull(src.f, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	head = head[:n]

	c, err := resolveCodec(o.registry, path, head, o.logger)
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}

	if _, err = src.f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek %s: %w", path, err)
	}
	h, err := c.ReadHeader(src.r)
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if err = checkDataSize(c, h, src.size); err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	o.logger.Debug("opened array file",
		"path", path, "codec", c.Name(), "variant", h.Variant,
		"dtype", h.DType, "shape", h.Shape)

	return &Array{
		dt:       h.DType,
		shape:    h.Shape.Clone(),
		filename: path,
		codec:    c,
		header:   h,
		opts:     o,
	}, nil
}

func resolveCodec(r *codec.Registry, path string, head []byte, logger *slog.Logger) (codec.Codec, error) {
	c, err := r.Resolve(path)
	if err != nil {
		detected, derr := r.Detect(head)
		if derr != nil {
			return nil, err
		}
		logger.Debug("codec detected from header", "path", path, "codec", detected.Name())
		return detected, nil
	}
	if !c.Probe(head) {
		if detected, derr := r.Detect(head); derr == nil && detected != c {
			logger.Debug("header does not match the extension, using detected codec",
				"path", path, "extension-codec", c.Name(), "codec", detected.Name())
			return detected, nil
		}
	}
	return c, nil
}

// checkDataSize verifies that a file of fileSize bytes is large enough
// to hold the data declared by h.
func checkDataSize(c codec.Codec, h codec.Header, fileSize int64) error {
	dataSize, err := h.Shape.ByteSize(h.DType)
	if err != nil {
		return codec.NewFormatError(c.Name(), "dims", "%v", err)
	}
	if avail := fileSize - int64(h.Size); avail < int64(dataSize) {
		return &codec.FormatError{
			Codec: c.Name(),
			Field: "data",
			Err: fmt.Errorf("truncated data: %d bytes available, %d expected: %w",
				max(avail, 0), dataSize, io.ErrUnexpectedEOF),
		}
	}
	return nil
}

// Load reads the elements from the backing file, if not loaded yet.
// It is a no-op on memory-resident and already loaded arrays.
//
// On failure the Array is left unloaded, and Load can be called again.
// The header is read again and must be identical to the one read by
// FromFile, otherwise an error matching ErrFormat is returned.
func (a *Array) Load() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.load()
}

func (a *Array) load() error {
	if a.loaded.Load() {
		return nil
	}

	src, err := openSource(a.filename, a.opts.mmap, a.opts.logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			a.opts.logger.Debug("failed to close array file", "path", a.filename, "error", cerr)
		}
	}()

	h, err := a.codec.ReadHeader(src.r)
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", a.filename, err)
	}
	if !h.Equal(a.header) {
		return codec.NewFormatError(a.codec.Name(), "header",
			"%s changed since it was opened: %s %v, was %s %v",
			a.filename, h.DType, h.Shape, a.header.DType, a.header.Shape)
	}
	if err = checkDataSize(a.codec, h, src.size); err != nil {
		return fmt.Errorf("failed to load %s: %w", a.filename, err)
	}

	b, err := a.codec.ReadData(src.r, h.DType, h.Shape)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", a.filename, err)
	}

	a.data = b
	a.loaded.Store(true)
	a.opts.logger.Debug("loaded array data",
		"path", a.filename, "bytes", b.ByteLen(), "mmap", src.mapped)
	return nil
}

// Buffer loads the Array if needed and returns its elements. The returned
// Buffer shares the Array storage.
func (a *Array) Buffer() (buffer.Buffer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.load(); err != nil {
		return buffer.Buffer{}, err
	}
	return a.data, nil
}

// Get returns a typed view of the elements, loading the Array if needed.
//
// ndim must match the number of dimensions of the Array, otherwise an
// error matching ErrShapeMismatch is returned. When T is not the stored
// element type, the elements are converted into a new slice; otherwise
// the view shares the Array storage. Converting complex elements to a
// non-complex type fails with an error matching ErrTypeCast.
func Get[T dtype.Element](a *Array, ndim int) (buffer.View[T], error) {
	if ndim != a.NDim() {
		return buffer.View[T]{}, fmt.Errorf("%w: requested %d dimensions, array has %d with shape %v",
			ErrShapeMismatch, ndim, a.NDim(), a.shape)
	}
	return GetAll[T](a)
}

// GetAll is like Get, without checking the number of dimensions.
func GetAll[T dtype.Element](a *Array) (buffer.View[T], error) {
	b, err := a.Buffer()
	if err != nil {
		return buffer.View[T]{}, err
	}
	data, err := buffer.ConvertTo[T](b)
	if err != nil {
		return buffer.View[T]{}, err
	}
	return buffer.NewView(data, a.shape)
}

// Shape returns a copy of the Array shape.
func (a *Array) Shape() buffer.Shape {
	return a.shape.Clone()
}

// NDim returns the number of dimensions.
func (a *Array) NDim() int {
	return len(a.shape)
}

// DType returns the stored element type.
func (a *Array) DType() dtype.ElementType {
	return a.dt
}

// IsLoaded reports whether the elements are in memory.
func (a *Array) IsLoaded() bool {
	return a.loaded.Load()
}

// Filename returns the path of the backing file, or "" for memory-resident
// arrays.
func (a *Array) Filename() string {
	return a.filename
}

// Codec returns the codec of the backing file, or nil for memory-resident
// arrays.
func (a *Array) Codec() codec.Codec {
	return a.codec
}

// Variant returns the header variant the backing file was read with
// (e.g. "current" or "legacy"), or "" for memory-resident arrays.
func (a *Array) Variant() string {
	return a.header.Variant
}

// String returns a short description of the Array, without loading it.
func (a *Array) String() string {
	if a.filename == "" {
		return fmt.Sprintf("Array(%s %v)", a.dt, a.shape)
	}
	return fmt.Sprintf("Array(%s %v, %s)", a.dt, a.shape, a.filename)
}
