// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tensor

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/codec"
	"github.com/nlpodyssey/arrayio/dtype"
)

// MaxNDim is the maximum number of dimensions of a current header.
const MaxNDim = 64

const (
	version = 1
	// magic(8) + version(1) + type(1) + ndim(2)
	currentFixedSize = leadSize + 4
)

var magic = [leadSize]byte{0x89, 'T', 'N', 'S', 'R', '\r', '\n', 0x1a}

func probeCurrent(head []byte) bool {
	return len(head) > leadSize && [leadSize]byte(head[:leadSize]) == magic && head[leadSize] == version
}

// readCurrentHeader reads what follows the magic.
func readCurrentHeader(r io.Reader) (codec.Header, error) {
	var fixed [currentFixedSize - leadSize]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		return codec.Header{}, headerReadError(err)
	}
	if fixed[0] != version {
		return codec.Header{}, codec.NewFormatError(Name, "version", "unsupported version %d", fixed[0])
	}
	dt := dtype.ElementType(fixed[1])
	if err := dt.Validate(); err != nil {
		return codec.Header{}, codec.NewFormatError(Name, "type", "unknown element type tag %d", fixed[1])
	}
	ndim := int(binary.LittleEndian.Uint16(fixed[2:]))
	if ndim < 1 || ndim > MaxNDim {
		return codec.Header{}, codec.NewFormatError(Name, "ndim", "expected 1 to %d dimensions, actual %d", MaxNDim, ndim)
	}

	raw := make([]byte, 8*ndim)
	if _, err := io.ReadFull(r, raw); err != nil {
		return codec.Header{}, headerReadError(err)
	}
	shape := make(buffer.Shape, ndim)
	for i := range shape {
		v := binary.LittleEndian.Uint64(raw[8*i:])
		if v < 1 || v > math.MaxInt {
			return codec.Header{}, codec.NewFormatError(Name, fmt.Sprintf("dims[%d]", i), "invalid dimension size %d", v)
		}
		shape[i] = int(v)
	}
	if _, err := shape.ByteSize(dt); err != nil {
		return codec.Header{}, codec.NewFormatError(Name, "dims", "%v", err)
	}

	return codec.Header{
		DType:   dt,
		Shape:   shape,
		Variant: VariantCurrent,
		Size:    currentFixedSize + len(raw),
	}, nil
}

func encodeCurrentHeader(dt dtype.ElementType, shape buffer.Shape) ([]byte, error) {
	if len(shape) > MaxNDim {
		return nil, fmt.Errorf("too many dimensions: max %d, actual %d", MaxNDim, len(shape))
	}
	head := make([]byte, 0, currentFixedSize+8*len(shape))
	head = append(head, magic[:]...)
	head = append(head, version, byte(dt))
	head = binary.LittleEndian.AppendUint16(head, uint16(len(shape)))
	for _, v := range shape {
		head = binary.LittleEndian.AppendUint64(head, uint64(v))
	}
	return head, nil
}
