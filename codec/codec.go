// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec defines the contract binary array formats implement, and
// a registry resolving which format handles a given file.
package codec

import (
	"fmt"
	"io"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/dtype"
)

// ProbeSize is the number of leading bytes callers read from a stream
// before handing them to Probe. Shorter streams are probed with whatever
// is available.
const ProbeSize = 64

// Codec encodes and decodes a single array (element type, shape and
// elements) to and from a byte stream.
//
// Implementations must be stateless and safe for concurrent use. A Registry
// compares codecs with ==, so implementations should be pointers or other
// comparable values.
type Codec interface {
	// Name identifies the codec, e.g. "tensor".
	Name() string

	// Extensions lists the file extensions claimed by the codec,
	// lower-case and including the leading dot.
	Extensions() []string

	// Probe reports whether head, the first bytes of a stream (see
	// ProbeSize), begins with this codec's signature. It must not retain
	// or modify head.
	Probe(head []byte) bool

	// ReadHeader parses the metadata portion of the stream. It must not
	// consume more bytes than the header occupies, leaving r positioned at
	// the start of the data section.
	ReadHeader(r io.Reader) (Header, error)

	// ReadData parses the data section, given the metadata previously
	// returned by ReadHeader. It fails with a *FormatError if fewer bytes
	// are available than shape implies.
	ReadData(r io.Reader, dt dtype.ElementType, shape buffer.Shape) (buffer.Buffer, error)

	// Write serializes header and data. It is the exact inverse of
	// ReadHeader followed by ReadData.
	Write(w io.Writer, dt dtype.ElementType, shape buffer.Shape, b buffer.Buffer) error
}

// Header is the metadata parsed from the beginning of a stream.
type Header struct {
	DType dtype.ElementType
	Shape buffer.Shape
	// Variant names the header encoding that was recognized, for codecs
	// that can read more than one (e.g. "current", "legacy").
	Variant string
	// Size is the number of bytes the header occupies.
	Size int
}

// Equal reports whether h and other describe the same data layout.
func (h Header) Equal(other Header) bool {
	return h.DType == other.DType && h.Shape.Equal(other.Shape) &&
		h.Variant == other.Variant && h.Size == other.Size
}

// CheckArray verifies that dt, shape and b are mutually consistent and can
// be written: dt is valid and matches the buffer, the shape is valid, and
// its element count matches the buffer length.
func CheckArray(dt dtype.ElementType, shape buffer.Shape, b buffer.Buffer) error {
	if err := dt.Validate(); err != nil {
		return err
	}
	if b.DType() != dt {
		return fmt.Errorf("buffer element type %s differs from declared %s", b.DType(), dt)
	}
	if err := shape.Validate(); err != nil {
		return err
	}
	if n := shape.NumElements(); n != b.Len() {
		return fmt.Errorf("the size computed from shape (%d) does not match buffer length (%d)", n, b.Len())
	}
	return nil
}
