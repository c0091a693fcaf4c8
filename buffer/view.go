// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"fmt"

	"github.com/nlpodyssey/arrayio/dtype"
)

// View is a typed, shaped, read-mostly window over row-major elements.
//
// A View may alias the storage of the Buffer it was obtained from: it is
// valid as long as that storage is, and writes through Data are visible
// to every other View of the same storage.
type View[T dtype.Element] struct {
	shape   Shape
	strides []int
	data    []T
}

// NewView returns a View over data with the given shape.
// The number of elements of shape must match len(data).
func NewView[T dtype.Element](data []T, shape Shape) (View[T], error) {
	if err := shape.Validate(); err != nil {
		return View[T]{}, err
	}
	if n := shape.NumElements(); n != len(data) {
		return View[T]{}, fmt.Errorf("the size computed from shape (%d) does not match data length (%d)", n, len(data))
	}
	return View[T]{
		shape:   shape.Clone(),
		strides: shape.Strides(),
		data:    data,
	}, nil
}

// Shape returns a copy of the view's shape.
func (v View[T]) Shape() Shape {
	return v.shape.Clone()
}

// NDim returns the number of dimensions.
func (v View[T]) NDim() int {
	return len(v.shape)
}

// Strides returns a copy of the row-major strides, in elements.
func (v View[T]) Strides() []int {
	s := make([]int, len(v.strides))
	copy(s, v.strides)
	return s
}

// Data returns the elements in row-major order. It is NOT a copy.
func (v View[T]) Data() []T {
	return v.data
}

// Len returns the total number of elements.
func (v View[T]) Len() int {
	return len(v.data)
}

// Offset returns the position in Data of the element at idx.
// It panics if the number of indices differs from NDim or an index is
// out of range, like slice indexing does.
func (v View[T]) Offset(idx ...int) int {
	if len(idx) != len(v.shape) {
		panic(fmt.Sprintf("view: %d indices given for %d dimensions", len(idx), len(v.shape)))
	}
	off := 0
	for i, x := range idx {
		if x < 0 || x >= v.shape[i] {
			panic(fmt.Sprintf("view: index %d out of range [0:%d] on dimension %d", x, v.shape[i], i))
		}
		off += x * v.strides[i]
	}
	return off
}

// At returns the element at idx (see Offset for the panic conditions).
func (v View[T]) At(idx ...int) T {
	return v.data[v.Offset(idx...)]
}

// Set assigns the element at idx (see Offset for the panic conditions).
func (v View[T]) Set(value T, idx ...int) {
	v.data[v.Offset(idx...)] = value
}
