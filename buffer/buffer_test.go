// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"testing"

	"github.com/nlpodyssey/arrayio/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		data := []int16{1, 2, 3}
		b, err := New(dtype.Int16, data)
		require.NoError(t, err)
		assert.Equal(t, dtype.Int16, b.DType())
		assert.Equal(t, 3, b.Len())
		assert.Equal(t, 6, b.ByteLen())
		assert.True(t, b.IsValid())

		data[0] = 42
		assert.Equal(t, []int16{42, 2, 3}, b.Data(), "data must not be copied")
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := New(dtype.Int16, []int32{1})
		assert.EqualError(t, err, "expected ElementType int16 to match data type []int16, actual data type []int32")
	})

	t.Run("invalid element type", func(t *testing.T) {
		_, err := New(dtype.ElementType(99), []int32{1})
		assert.EqualError(t, err, "invalid or unsupported ElementType: invalid ElementType(99)")
	})

	t.Run("nil data", func(t *testing.T) {
		_, err := New(dtype.Int8, nil)
		assert.Error(t, err)
	})
}

func TestOf(t *testing.T) {
	b := Of([]complex64{1, 2})
	assert.Equal(t, dtype.Complex64, b.DType())
	assert.Equal(t, 2, b.Len())

	empty := Of[float32](nil)
	assert.Equal(t, dtype.Float32, empty.DType())
	assert.Equal(t, 0, empty.Len())
	assert.True(t, empty.IsValid())
}

func TestMake(t *testing.T) {
	for _, dt := range dtype.All() {
		b, err := Make(dt, 3)
		require.NoError(t, err, dt.String())
		assert.Equal(t, dt, b.DType())
		assert.Equal(t, 3, b.Len())
		assert.Equal(t, 3*dt.Size(), b.ByteLen())
	}

	_, err := Make(dtype.Int8, -1)
	assert.Error(t, err)
	_, err = Make(0, 1)
	assert.Error(t, err)
}

func TestBuffer_ZeroValue(t *testing.T) {
	var b Buffer
	assert.False(t, b.IsValid())
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.ByteLen())
}

func TestBuffer_Clone(t *testing.T) {
	data := []float64{1, 2}
	b := Of(data)
	c := b.Clone()
	data[0] = 42
	assert.Equal(t, []float64{1, 2}, c.Data())
	assert.Equal(t, dtype.Float64, c.DType())
}

func TestSlice(t *testing.T) {
	b := Of([]uint32{7, 8})

	s, err := Slice[uint32](b)
	require.NoError(t, err)
	assert.Equal(t, []uint32{7, 8}, s)

	_, err = Slice[int32](b)
	assert.EqualError(t, err, "expected data type []int32, actual []uint32")
}
