// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"

	"github.com/nlpodyssey/arrayio/dtype"
)

// The Shape of an array: one positive size per dimension, outermost first.
type Shape []int

// Validate returns an error if the Shape has no dimensions, contains a
// non-positive size, or describes more elements than fit in an int.
func (s Shape) Validate() error {
	if len(s) == 0 {
		return fmt.Errorf("shape must have at least one dimension")
	}
	for i, v := range s {
		if v < 1 {
			return fmt.Errorf("shape dimension %d has non-positive size %d", i, v)
		}
	}
	_, err := s.CheckedNumElements()
	return err
}

// NDim returns the number of dimensions.
func (s Shape) NDim() int {
	return len(s)
}

// NumElements returns the product of all dimensions.
// It panics if the product overflows int; use CheckedNumElements on
// shapes that have not been validated.
func (s Shape) NumElements() int {
	n, err := s.CheckedNumElements()
	if err != nil {
		panic(err)
	}
	return n
}

// CheckedNumElements returns the product of all dimensions, failing on
// negative sizes or int overflow.
func (s Shape) CheckedNumElements() (int, error) {
	size := uint(1)
	for _, v := range s {
		if v < 0 {
			return 0, fmt.Errorf("shape contains negative value %d", v)
		}
		var hi uint
		if hi, size = bits.Mul(size, uint(v)); hi != 0 {
			return 0, fmt.Errorf("int overflow computing number of elements from shape")
		}
	}
	if size > math.MaxInt {
		return 0, fmt.Errorf("number of elements computed from shape is too large for int type: %d", size)
	}
	return int(size), nil
}

// ByteSize returns the number of bytes needed to store all the elements
// described by the shape, with the given element type.
func (s Shape) ByteSize(dt dtype.ElementType) (int, error) {
	if err := dt.Validate(); err != nil {
		return 0, err
	}
	n, err := s.CheckedNumElements()
	if err != nil {
		return 0, err
	}
	hi, size := bits.Mul(uint(n), uint(dt.Size()))
	if hi != 0 || size > math.MaxInt {
		return 0, fmt.Errorf("int overflow computing byte size of %s %v", dt, s)
	}
	return int(size), nil
}

// Strides returns, for each dimension, how many elements separate two
// consecutive indices along it in row-major order.
func (s Shape) Strides() []int {
	strides := make([]int, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		strides[i] = acc
		acc *= s[i]
	}
	return strides
}

// Equal reports whether s and other have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of s.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// String formats the shape as "[6 4]".
func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, v := range s {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
