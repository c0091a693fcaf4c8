// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"math"
	"testing"

	"github.com/nlpodyssey/arrayio/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_Validate(t *testing.T) {
	assert.NoError(t, Shape{1}.Validate())
	assert.NoError(t, Shape{6, 4}.Validate())

	assert.EqualError(t, Shape(nil).Validate(), "shape must have at least one dimension")
	assert.EqualError(t, Shape{}.Validate(), "shape must have at least one dimension")
	assert.EqualError(t, Shape{2, 0}.Validate(), "shape dimension 1 has non-positive size 0")
	assert.EqualError(t, Shape{-1}.Validate(), "shape dimension 0 has non-positive size -1")
	assert.Error(t, Shape{math.MaxInt, 2}.Validate())
}

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 24, Shape{6, 4}.NumElements())
	assert.Equal(t, 1, Shape{1, 1, 1}.NumElements())
	assert.Equal(t, 1, Shape{}.NumElements())

	_, err := Shape{math.MaxInt, 3}.CheckedNumElements()
	assert.EqualError(t, err, "int overflow computing number of elements from shape")

	_, err = Shape{2, -3}.CheckedNumElements()
	assert.EqualError(t, err, "shape contains negative value -3")

	assert.Panics(t, func() { Shape{math.MaxInt, 3}.NumElements() })
}

func TestShape_ByteSize(t *testing.T) {
	n, err := Shape{6, 4}.ByteSize(dtype.Float64)
	require.NoError(t, err)
	assert.Equal(t, 192, n)

	_, err = Shape{2}.ByteSize(0)
	assert.Error(t, err)

	_, err = Shape{math.MaxInt / 2}.ByteSize(dtype.Complex128)
	assert.Error(t, err)
}

func TestShape_Strides(t *testing.T) {
	assert.Equal(t, []int{4, 1}, Shape{6, 4}.Strides())
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.Strides())
	assert.Equal(t, []int{1}, Shape{5}.Strides())
}

func TestShape_EqualCloneString(t *testing.T) {
	s := Shape{6, 4}
	assert.True(t, s.Equal(Shape{6, 4}))
	assert.False(t, s.Equal(Shape{4, 6}))
	assert.False(t, s.Equal(Shape{6, 4, 1}))

	c := s.Clone()
	c[0] = 1
	assert.Equal(t, Shape{6, 4}, s)
	assert.Nil(t, Shape(nil).Clone())

	assert.Equal(t, "[6 4]", s.String())
	assert.Equal(t, 2, s.NDim())
}
