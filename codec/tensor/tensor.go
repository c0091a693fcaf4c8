// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tensor implements the ".tensor" binary array format.
//
// Two header encodings are readable. Files are always written with the
// current one:
//
//	offset  size    field
//	0       8       magic: 0x89 'T' 'N' 'S' 'R' '\r' '\n' 0x1a
//	8       1       version (1)
//	9       1       element type (dtype.ElementType value)
//	10      2       ndim (uint16, at least 1, at most MaxNDim)
//	12      8*ndim  dims (uint64 each, at least 1)
//
// The legacy encoding is the 28 bytes header of torch5spro alpha
// TensorFile archives, and is only read:
//
//	offset  size    field
//	0       4       tensor type (int32): 0 char, 1 short, 2 int,
//	                3 long, 4 float, 5 double
//	4       4       number of samples (int32, at least 1)
//	8       4       number of dimensions (int32, 1 to 4)
//	12      16      size of each dimension (4 x int32, unused ones ignored)
//
// A legacy file holding more than one sample is read as a single array
// with a leading dimension of size "number of samples".
//
// All integers are little-endian. The header is immediately followed by
// the elements, little-endian and row-major, with no padding.
package tensor

import (
	"errors"
	"fmt"
	"io"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/dtype"
)

const (
	// Name is the codec name.
	Name = "tensor"
	// Extension is the file extension claimed by the codec.
	Extension = ".tensor"
)

// Header variants reported in codec.Header.Variant.
const (
	VariantCurrent = "current"
	VariantLegacy  = "legacy"
)

// leadSize is the number of bytes read to tell the two variants apart.
// It is smaller than both headers.
const leadSize = 8

// Codec reads and writes tensor files. The zero value is ready to use.
type Codec struct{}

var _ codec.Codec = (*Codec)(nil)

// New returns a tensor Codec.
func New() *Codec {
	return &Codec{}
}

// Name returns "tensor".
func (*Codec) Name() string {
	return Name
}

// Extensions returns [".tensor"].
func (*Codec) Extensions() []string {
	return []string{Extension}
}

// Probe reports whether head starts with a current or a legacy header.
func (*Codec) Probe(head []byte) bool {
	return probeCurrent(head) || probeLegacy(head)
}

// Variant returns the header variant head starts with, or "" if none.
func Variant(head []byte) string {
	switch {
	case probeCurrent(head):
		return VariantCurrent
	case probeLegacy(head):
		return VariantLegacy
	}
	return ""
}

// ReadHeader reads either header variant, consuming exactly the header
// bytes. The variant is chosen from the first 8 bytes: the current magic
// never begins with a valid legacy type code.
func (*Codec) ReadHeader(r io.Reader) (codec.Header, error) {
	var lead [leadSize]byte
	if _, err := io.ReadFull(r, lead[:]); err != nil {
		return codec.Header{}, headerReadError(err)
	}
	if lead == magic {
		return readCurrentHeader(r)
	}
	if isLegacyLead(lead[:]) {
		return readLegacyHeader(r, lead)
	}
	return codec.Header{}, codec.NewFormatError(Name, "type",
		"neither the tensor signature nor a legacy tensor type code: % x", lead[:4])
}

// ReadData reads exactly the number of elements implied by shape.
func (*Codec) ReadData(r io.Reader, dt dtype.ElementType, shape buffer.Shape) (buffer.Buffer, error) {
	if err := dt.Validate(); err != nil {
		return buffer.Buffer{}, codec.NewFormatError(Name, "type", "%v", err)
	}
	if err := shape.Validate(); err != nil {
		return buffer.Buffer{}, codec.NewFormatError(Name, "dims", "%v", err)
	}
	b, err := buffer.ReadFrom(r, dt, shape.NumElements())
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return buffer.Buffer{}, &codec.FormatError{
				Codec: Name,
				Field: "data",
				Err:   fmt.Errorf("truncated data for %s %v: %w", dt, shape, err),
			}
		}
		return buffer.Buffer{}, err
	}
	return b, nil
}

// Write writes a current header followed by the elements.
func (*Codec) Write(w io.Writer, dt dtype.ElementType, shape buffer.Shape, b buffer.Buffer) error {
	if err := codec.CheckArray(dt, shape, b); err != nil {
		return fmt.Errorf("cannot write tensor: %w", err)
	}
	head, err := encodeCurrentHeader(dt, shape)
	if err != nil {
		return fmt.Errorf("cannot write tensor: %w", err)
	}
	if _, err = w.Write(head); err != nil {
		return fmt.Errorf("failed to write tensor header: %w", err)
	}
	if _, err = b.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}

func headerReadError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &codec.FormatError{Codec: Name, Field: "header", Err: fmt.Errorf("truncated header: %w", err)}
	}
	return fmt.Errorf("failed to read tensor header: %w", err)
}
