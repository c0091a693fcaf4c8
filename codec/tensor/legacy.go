// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/dtype"
)

const (
	legacyHeaderSize = 28
	legacyMaxNDim    = 4
)

// legacyTypes maps torch5spro tensor type codes to element types.
// Long was written from 64-bit builds.
var legacyTypes = [...]dtype.ElementType{
	0: dtype.Int8,    // Char
	1: dtype.Int16,   // Short
	2: dtype.Int32,   // Int
	3: dtype.Int64,   // Long
	4: dtype.Float32, // Float
	5: dtype.Float64, // Double
}

type legacyHeader struct {
	tensorType int32
	nSamples   int32
	nDims      int32
	size       [legacyMaxNDim]int32
}

func decodeLegacyHeader(b []byte) legacyHeader {
	le := binary.LittleEndian
	h := legacyHeader{
		tensorType: int32(le.Uint32(b[0:])),
		nSamples:   int32(le.Uint32(b[4:])),
		nDims:      int32(le.Uint32(b[8:])),
	}
	for i := range h.size {
		h.size[i] = int32(le.Uint32(b[12+4*i:]))
	}
	return h
}

func isLegacyLead(lead []byte) bool {
	t := int32(binary.LittleEndian.Uint32(lead))
	return t >= 0 && int(t) < len(legacyTypes)
}

func probeLegacy(head []byte) bool {
	if len(head) < legacyHeaderSize {
		return false
	}
	_, err := decodeLegacyHeader(head).toHeader()
	return err == nil
}

// readLegacyHeader reads the rest of a legacy header, lead being its
// first bytes.
func readLegacyHeader(r io.Reader, lead [leadSize]byte) (codec.Header, error) {
	var raw [legacyHeaderSize]byte
	copy(raw[:], lead[:])
	if _, err := io.ReadFull(r, raw[leadSize:]); err != nil {
		return codec.Header{}, headerReadError(err)
	}
	return decodeLegacyHeader(raw[:]).toHeader()
}

func (h legacyHeader) toHeader() (codec.Header, error) {
	if h.tensorType < 0 || int(h.tensorType) >= len(legacyTypes) {
		return codec.Header{}, codec.NewFormatError(Name, "type", "unknown legacy tensor type %d", h.tensorType)
	}
	if h.nSamples < 1 {
		return codec.Header{}, codec.NewFormatError(Name, "samples", "invalid number of samples %d", h.nSamples)
	}
	if h.nDims < 1 || h.nDims > legacyMaxNDim {
		return codec.Header{}, codec.NewFormatError(Name, "ndim", "expected 1 to %d dimensions, actual %d", legacyMaxNDim, h.nDims)
	}

	shape := make(buffer.Shape, 0, h.nDims+1)
	if h.nSamples > 1 {
		shape = append(shape, int(h.nSamples))
	}
	for i, v := range h.size[:h.nDims] {
		if v < 1 {
			return codec.Header{}, codec.NewFormatError(Name, fmt.Sprintf("dims[%d]", i), "invalid dimension size %d", v)
		}
		shape = append(shape, int(v))
	}

	dt := legacyTypes[h.tensorType]
	if _, err := shape.ByteSize(dt); err != nil {
		return codec.Header{}, codec.NewFormatError(Name, "dims", "%v", err)
	}

	return codec.Header{
		DType:   dt,
		Shape:   shape,
		Variant: VariantLegacy,
		Size:    legacyHeaderSize,
	}, nil
}
