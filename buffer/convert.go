// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"fmt"

	"github.com/nlpodyssey/arrayio/dtype"
)

// Conversion rules applied by Convert, element by element:
//
//   - integer to integer: two's complement truncation or extension, so
//     values outside the target range wrap (int8(-1) becomes uint8(255))
//   - integer or float to float: nearest representable value
//   - float to integer: truncation toward zero; when the truncated value
//     does not fit the target type the result is implementation-dependent,
//     as for any Go conversion, and must not be relied upon
//   - bool to any real or complex type: 0 or 1
//   - real to bool: v != 0
//   - real to complex: the value becomes the real part, imaginary part 0
//   - complex64 to complex128 and back: component-wise float conversion
//   - complex to any non-complex type: ErrTypeCast

type realNumber interface {
	int8 | uint8 | int16 | uint16 | int32 | uint32 | int64 | uint64 | float32 | float64
}

type complexNumber interface {
	complex64 | complex128
}

// Convert returns a Buffer holding the elements of b converted to the
// element type to. When b already has that type, b itself is returned
// and no copy is made.
func Convert(b Buffer, to dtype.ElementType) (Buffer, error) {
	if err := to.Validate(); err != nil {
		return Buffer{}, err
	}
	if b.dt == to {
		return b, nil
	}

	var (
		out any
		err error
	)
	switch src := b.data.(type) {
	case []bool:
		out = convertFromBool(src, to)
	case []int8:
		out = convertFromReal(src, to)
	case []uint8:
		out = convertFromReal(src, to)
	case []int16:
		out = convertFromReal(src, to)
	case []uint16:
		out = convertFromReal(src, to)
	case []int32:
		out = convertFromReal(src, to)
	case []uint32:
		out = convertFromReal(src, to)
	case []int64:
		out = convertFromReal(src, to)
	case []uint64:
		out = convertFromReal(src, to)
	case []float32:
		out = convertFromReal(src, to)
	case []float64:
		out = convertFromReal(src, to)
	case []complex64:
		out, err = convertFromComplex(src, b.dt, to)
	case []complex128:
		out, err = convertFromComplex(src, b.dt, to)
	default:
		return Buffer{}, fmt.Errorf("invalid or unsupported source ElementType: %s", b.dt)
	}
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{dt: to, data: out}, nil
}

// ConvertTo converts the elements of b to T, returning a typed slice.
// When b already holds []T the slice is returned without copying.
func ConvertTo[T dtype.Element](b Buffer) ([]T, error) {
	c, err := Convert(b, dtype.Of[T]())
	if err != nil {
		return nil, err
	}
	return Slice[T](c)
}

func convertFromReal[S realNumber](src []S, to dtype.ElementType) any {
	switch to {
	case dtype.Bool:
		out := make([]bool, len(src))
		for i, v := range src {
			out[i] = v != 0
		}
		return out
	case dtype.Int8:
		return realToReal[S, int8](src)
	case dtype.Uint8:
		return realToReal[S, uint8](src)
	case dtype.Int16:
		return realToReal[S, int16](src)
	case dtype.Uint16:
		return realToReal[S, uint16](src)
	case dtype.Int32:
		return realToReal[S, int32](src)
	case dtype.Uint32:
		return realToReal[S, uint32](src)
	case dtype.Int64:
		return realToReal[S, int64](src)
	case dtype.Uint64:
		return realToReal[S, uint64](src)
	case dtype.Float32:
		return realToReal[S, float32](src)
	case dtype.Float64:
		return realToReal[S, float64](src)
	case dtype.Complex64:
		return realToComplex[S, complex64](src)
	case dtype.Complex128:
		return realToComplex[S, complex128](src)
	}
	panic("unreachable")
}

func convertFromBool(src []bool, to dtype.ElementType) any {
	ones := make([]uint8, len(src))
	for i, v := range src {
		if v {
			ones[i] = 1
		}
	}
	if to == dtype.Uint8 {
		return ones
	}
	return convertFromReal(ones, to)
}

func convertFromComplex[S complexNumber](src []S, from, to dtype.ElementType) (any, error) {
	switch to {
	case dtype.Complex64:
		return complexToComplex[S, complex64](src), nil
	case dtype.Complex128:
		return complexToComplex[S, complex128](src), nil
	}
	return nil, fmt.Errorf("%w: from %s to %s", ErrTypeCast, from, to)
}

func realToReal[S, D realNumber](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}

func realToComplex[S realNumber, D complexNumber](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(complex(float64(v), 0))
	}
	return out
}

func complexToComplex[S, D complexNumber](src []S) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = D(v)
	}
	return out
}
