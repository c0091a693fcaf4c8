// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package buffer provides type-erased, contiguous, row-major storage for
// array elements, together with shapes, element-wise casting and typed
// views.
package buffer

import (
	"fmt"

	"github.com/nlpodyssey/arrayio/dtype"
)

// A Buffer owns a contiguous block of elements of a single ElementType,
// stored row-major (last dimension varies fastest).
//
// The value of DType and the type of Data always match each other,
// according to the following pairs:
//
//	ElementType | Data type
//	------------+--------------
//	Bool        | []bool
//	Int8        | []int8
//	Uint8       | []uint8
//	Int16       | []int16
//	Uint16      | []uint16
//	Int32       | []int32
//	Uint32      | []uint32
//	Int64       | []int64
//	Uint64      | []uint64
//	Float32     | []float32
//	Float64     | []float64
//	Complex64   | []complex64
//	Complex128  | []complex128
//
// The zero value is an empty, invalid Buffer.
type Buffer struct {
	dt   dtype.ElementType
	data any
}

// New returns a Buffer wrapping data, after checking that the dynamic type
// of data matches dt.
//
// Since data can possibly take a large amount of memory, it is NOT copied.
// Modifications to the slice after this call are visible through the
// Buffer.
func New(dt dtype.ElementType, data any) (Buffer, error) {
	if _, err := checkTypesAndGetDataLen(dt, data); err != nil {
		return Buffer{}, err
	}
	return Buffer{dt: dt, data: data}, nil
}

// Of returns a Buffer wrapping data, with the ElementType matching T.
// The slice is not copied.
func Of[T dtype.Element](data []T) Buffer {
	if data == nil {
		data = []T{}
	}
	return Buffer{dt: dtype.Of[T](), data: data}
}

// Make allocates a zero-filled Buffer of n elements.
func Make(dt dtype.ElementType, n int) (Buffer, error) {
	if n < 0 {
		return Buffer{}, fmt.Errorf("negative buffer length %d", n)
	}
	switch dt {
	case dtype.Bool:
		return Buffer{dt, make([]bool, n)}, nil
	case dtype.Int8:
		return Buffer{dt, make([]int8, n)}, nil
	case dtype.Uint8:
		return Buffer{dt, make([]uint8, n)}, nil
	case dtype.Int16:
		return Buffer{dt, make([]int16, n)}, nil
	case dtype.Uint16:
		return Buffer{dt, make([]uint16, n)}, nil
	case dtype.Int32:
		return Buffer{dt, make([]int32, n)}, nil
	case dtype.Uint32:
		return Buffer{dt, make([]uint32, n)}, nil
	case dtype.Int64:
		return Buffer{dt, make([]int64, n)}, nil
	case dtype.Uint64:
		return Buffer{dt, make([]uint64, n)}, nil
	case dtype.Float32:
		return Buffer{dt, make([]float32, n)}, nil
	case dtype.Float64:
		return Buffer{dt, make([]float64, n)}, nil
	case dtype.Complex64:
		return Buffer{dt, make([]complex64, n)}, nil
	case dtype.Complex128:
		return Buffer{dt, make([]complex128, n)}, nil
	}
	return Buffer{}, fmt.Errorf("invalid or unsupported ElementType: %s", dt)
}

func checkTypesAndGetDataLen(dt dtype.ElementType, data any) (int, error) {
	switch dt {
	case dtype.Bool:
		return resolveDataLen[bool](dt, data)
	case dtype.Int8:
		return resolveDataLen[int8](dt, data)
	case dtype.Uint8:
		return resolveDataLen[uint8](dt, data)
	case dtype.Int16:
		return resolveDataLen[int16](dt, data)
	case dtype.Uint16:
		return resolveDataLen[uint16](dt, data)
	case dtype.Int32:
		return resolveDataLen[int32](dt, data)
	case dtype.Uint32:
		return resolveDataLen[uint32](dt, data)
	case dtype.Int64:
		return resolveDataLen[int64](dt, data)
	case dtype.Uint64:
		return resolveDataLen[uint64](dt, data)
	case dtype.Float32:
		return resolveDataLen[float32](dt, data)
	case dtype.Float64:
		return resolveDataLen[float64](dt, data)
	case dtype.Complex64:
		return resolveDataLen[complex64](dt, data)
	case dtype.Complex128:
		return resolveDataLen[complex128](dt, data)
	}
	return 0, fmt.Errorf("invalid or unsupported ElementType: %s", dt)
}

func resolveDataLen[T any](dt dtype.ElementType, data any) (int, error) {
	y, ok := data.([]T)
	if !ok {
		return 0, fmt.Errorf("expected ElementType %s to match data type %T, actual data type %T", dt, y, data)
	}
	return len(y), nil
}

// DType returns the element type of the buffer.
func (b Buffer) DType() dtype.ElementType {
	return b.dt
}

// Len returns the number of elements.
func (b Buffer) Len() int {
	if b.data == nil {
		return 0
	}
	n, _ := checkTypesAndGetDataLen(b.dt, b.data)
	return n
}

// ByteLen returns the number of bytes the elements occupy once encoded.
func (b Buffer) ByteLen() int {
	if b.data == nil {
		return 0
	}
	return b.Len() * b.dt.Size()
}

// IsValid reports whether the Buffer holds data of a valid ElementType.
func (b Buffer) IsValid() bool {
	return b.data != nil && b.dt.Validate() == nil
}

// Data returns the typed slice backing the buffer.
// Possible types are documented on the Buffer type.
//
// The value returned is NOT a copy.
func (b Buffer) Data() any {
	return b.data
}

// Clone returns a Buffer with a copy of the data.
func (b Buffer) Clone() Buffer {
	switch v := b.data.(type) {
	case []bool:
		return Buffer{b.dt, cloneSlice(v)}
	case []int8:
		return Buffer{b.dt, cloneSlice(v)}
	case []uint8:
		return Buffer{b.dt, cloneSlice(v)}
	case []int16:
		return Buffer{b.dt, cloneSlice(v)}
	case []uint16:
		return Buffer{b.dt, cloneSlice(v)}
	case []int32:
		return Buffer{b.dt, cloneSlice(v)}
	case []uint32:
		return Buffer{b.dt, cloneSlice(v)}
	case []int64:
		return Buffer{b.dt, cloneSlice(v)}
	case []uint64:
		return Buffer{b.dt, cloneSlice(v)}
	case []float32:
		return Buffer{b.dt, cloneSlice(v)}
	case []float64:
		return Buffer{b.dt, cloneSlice(v)}
	case []complex64:
		return Buffer{b.dt, cloneSlice(v)}
	case []complex128:
		return Buffer{b.dt, cloneSlice(v)}
	}
	return b
}

func cloneSlice[T any](s []T) []T {
	c := make([]T, len(s))
	copy(c, s)
	return c
}

// Slice returns the buffer's data as []T.
// It fails if T does not match the buffer's ElementType; no conversion
// is performed (see Convert).
func Slice[T dtype.Element](b Buffer) ([]T, error) {
	y, ok := b.data.([]T)
	if !ok {
		return nil, fmt.Errorf("expected data type %T, actual %T", y, b.data)
	}
	return y, nil
}
