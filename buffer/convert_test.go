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

func TestConvert_SameType(t *testing.T) {
	data := []int8{1, 2}
	b := Of(data)
	c, err := Convert(b, dtype.Int8)
	require.NoError(t, err)
	data[0] = 42
	assert.Equal(t, []int8{42, 2}, c.Data(), "no copy when the type does not change")
}

func TestConvert(t *testing.T) {
	testCases := []struct {
		name string
		in   Buffer
		to   dtype.ElementType
		want any
	}{
		// signed/unsigned pairs wrap
		{"int8 to uint8", Of([]int8{-1, -128, 127, 0}), dtype.Uint8, []uint8{255, 128, 127, 0}},
		{"uint8 to int8", Of([]uint8{255, 128, 127}), dtype.Int8, []int8{-1, -128, 127}},
		{"int32 to uint32", Of([]int32{-2}), dtype.Uint32, []uint32{4294967294}},
		{"uint64 to int64", Of([]uint64{18446744073709551615}), dtype.Int64, []int64{-1}},

		// widening
		{"int8 to int64", Of([]int8{-1, 100}), dtype.Int64, []int64{-1, 100}},
		{"uint8 to int16", Of([]uint8{255}), dtype.Int16, []int16{255}},
		{"int16 to float64", Of([]int16{-300, 7}), dtype.Float64, []float64{-300, 7}},
		{"float32 to float64", Of([]float32{1.5, -0.25}), dtype.Float64, []float64{1.5, -0.25}},

		// narrowing
		{"int32 to int8", Of([]int32{300, -129, 127}), dtype.Int8, []int8{44, 127, 127}},
		{"uint16 to uint8", Of([]uint16{0x1234, 0x00ff}), dtype.Uint8, []uint8{0x34, 0xff}},
		{"int64 to int16", Of([]int64{65537, -65537}), dtype.Int16, []int16{1, -1}},
		{"float64 to float32", Of([]float64{0.5, -2}), dtype.Float32, []float32{0.5, -2}},

		// float to integer truncates toward zero
		{"float64 to int32", Of([]float64{1.9, -1.9, 0.4, -0.4}), dtype.Int32, []int32{1, -1, 0, 0}},
		{"float32 to int8", Of([]float32{12.7, -12.7}), dtype.Int8, []int8{12, -12}},
		{"float64 to uint8", Of([]float64{254.99}), dtype.Uint8, []uint8{254}},

		// bool
		{"bool to int32", Of([]bool{true, false}), dtype.Int32, []int32{1, 0}},
		{"bool to uint8", Of([]bool{true, false}), dtype.Uint8, []uint8{1, 0}},
		{"bool to float64", Of([]bool{false, true}), dtype.Float64, []float64{0, 1}},
		{"bool to complex64", Of([]bool{true}), dtype.Complex64, []complex64{1}},
		{"int8 to bool", Of([]int8{0, -1, 3}), dtype.Bool, []bool{false, true, true}},
		{"float32 to bool", Of([]float32{0, 0.1}), dtype.Bool, []bool{false, true}},

		// complex
		{"float32 to complex128", Of([]float32{2.5}), dtype.Complex128, []complex128{complex(2.5, 0)}},
		{"int16 to complex64", Of([]int16{-3}), dtype.Complex64, []complex64{complex(-3, 0)}},
		{"complex64 to complex128", Of([]complex64{complex(1, -2)}), dtype.Complex128, []complex128{complex(1, -2)}},
		{"complex128 to complex64", Of([]complex128{complex(0.5, 4)}), dtype.Complex64, []complex64{complex(0.5, 4)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Convert(tc.in, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.to, out.DType())
			assert.Equal(t, tc.want, out.Data())
		})
	}
}

func TestConvert_EveryPair(t *testing.T) {
	for _, from := range dtype.All() {
		src, err := Make(from, 2)
		require.NoError(t, err)
		for _, to := range dtype.All() {
			out, err := Convert(src, to)
			if from.IsComplex() && !to.IsComplex() {
				assert.ErrorIs(t, err, ErrTypeCast, "%s to %s", from, to)
				continue
			}
			require.NoError(t, err, "%s to %s", from, to)
			assert.Equal(t, to, out.DType())
			assert.Equal(t, 2, out.Len())
		}
	}
}

func TestConvert_ComplexToReal(t *testing.T) {
	_, err := Convert(Of([]complex64{1}), dtype.Float32)
	assert.EqualError(t, err, "illegal element type cast: from complex64 to float32")
	assert.ErrorIs(t, err, ErrTypeCast)

	_, err = Convert(Of([]complex128{1}), dtype.Bool)
	assert.ErrorIs(t, err, ErrTypeCast)
}

func TestConvert_InvalidTarget(t *testing.T) {
	_, err := Convert(Of([]int8{1}), 0)
	assert.EqualError(t, err, "invalid ElementType(0)")
}

func TestConvert_InvalidSource(t *testing.T) {
	_, err := Convert(Buffer{}, dtype.Int8)
	assert.Error(t, err)
}

func TestConvertTo(t *testing.T) {
	s, err := ConvertTo[uint8](Of([]int8{-1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 1}, s)

	_, err = ConvertTo[float64](Of([]complex128{1}))
	assert.ErrorIs(t, err, ErrTypeCast)
}
