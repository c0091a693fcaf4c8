// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/nlpodyssey/arrayio/dtype"
)

// elements encoded per Write call by WriteTo
const writeChunkLen = 4096

// Bytes encodes the elements little-endian, with no padding. Booleans
// take one byte each (0 or 1); complex values are stored as real part
// followed by imaginary part.
func (b Buffer) Bytes() []byte {
	n := b.Len()
	return appendElements(make([]byte, 0, n*b.dt.Size()), b.data, 0, n)
}

// WriteTo writes the encoded elements (see Bytes) to w.
// It satisfies io.WriterTo interface.
func (b Buffer) WriteTo(w io.Writer) (int64, error) {
	n := b.Len()
	scratch := make([]byte, 0, min(n, writeChunkLen)*max(b.dt.Size(), 1))
	var written int64
	for lo := 0; lo < n; lo += writeChunkLen {
		hi := min(lo+writeChunkLen, n)
		scratch = appendElements(scratch[:0], b.data, lo, hi)
		m, err := w.Write(scratch)
		written += int64(m)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

// ReadFrom reads exactly n little-endian encoded elements of type dt
// from r. A short read fails with an error wrapping io.ErrUnexpectedEOF
// (or io.EOF when nothing at all could be read); the data is never
// zero-filled.
func ReadFrom(r io.Reader, dt dtype.ElementType, n int) (Buffer, error) {
	if err := dt.Validate(); err != nil {
		return Buffer{}, err
	}
	if n < 0 {
		return Buffer{}, fmt.Errorf("negative buffer length %d", n)
	}
	if n > math.MaxInt/dt.Size() {
		return Buffer{}, fmt.Errorf("int overflow computing byte size of %d %s elements", n, dt)
	}
	raw := make([]byte, n*dt.Size())
	if _, err := io.ReadFull(r, raw); err != nil {
		return Buffer{}, fmt.Errorf("failed to read %d bytes of %s data: %w", len(raw), dt, err)
	}
	return FromBytes(dt, raw)
}

// FromBytes decodes little-endian encoded elements of type dt.
// The length of raw must be a multiple of the element size.
func FromBytes(dt dtype.ElementType, raw []byte) (Buffer, error) {
	if err := dt.Validate(); err != nil {
		return Buffer{}, err
	}
	size := dt.Size()
	if len(raw)%size != 0 {
		return Buffer{}, fmt.Errorf("byte length %d is not a multiple of %s size %d", len(raw), dt, size)
	}
	n := len(raw) / size

	var data any
	switch dt {
	case dtype.Bool:
		out := make([]bool, n)
		for i := range out {
			out[i] = raw[i] != 0
		}
		data = out
	case dtype.Int8:
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(raw[i])
		}
		data = out
	case dtype.Uint8:
		out := make([]uint8, n)
		copy(out, raw)
		data = out
	case dtype.Int16:
		data = decode16[int16](raw, n)
	case dtype.Uint16:
		data = decode16[uint16](raw, n)
	case dtype.Int32:
		data = decode32[int32](raw, n)
	case dtype.Uint32:
		data = decode32[uint32](raw, n)
	case dtype.Int64:
		data = decode64[int64](raw, n)
	case dtype.Uint64:
		data = decode64[uint64](raw, n)
	case dtype.Float32:
		out := make([]float32, n)
		for i := range out {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[4*i:]))
		}
		data = out
	case dtype.Float64:
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
		data = out
	case dtype.Complex64:
		out := make([]complex64, n)
		for i := range out {
			re := math.Float32frombits(binary.LittleEndian.Uint32(raw[8*i:]))
			im := math.Float32frombits(binary.LittleEndian.Uint32(raw[8*i+4:]))
			out[i] = complex(re, im)
		}
		data = out
	case dtype.Complex128:
		out := make([]complex128, n)
		for i := range out {
			re := math.Float64frombits(binary.LittleEndian.Uint64(raw[16*i:]))
			im := math.Float64frombits(binary.LittleEndian.Uint64(raw[16*i+8:]))
			out[i] = complex(re, im)
		}
		data = out
	}
	return Buffer{dt: dt, data: data}, nil
}

func decode16[T int16 | uint16](raw []byte, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(binary.LittleEndian.Uint16(raw[2*i:]))
	}
	return out
}

func decode32[T int32 | uint32](raw []byte, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(binary.LittleEndian.Uint32(raw[4*i:]))
	}
	return out
}

func decode64[T int64 | uint64](raw []byte, n int) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return out
}

// appendElements appends the encoding of data[lo:hi] to dst.
func appendElements(dst []byte, data any, lo, hi int) []byte {
	le := binary.LittleEndian
	switch v := data.(type) {
	case []bool:
		for _, x := range v[lo:hi] {
			if x {
				dst = append(dst, 1)
			} else {
				dst = append(dst, 0)
			}
		}
	case []int8:
		for _, x := range v[lo:hi] {
			dst = append(dst, byte(x))
		}
	case []uint8:
		dst = append(dst, v[lo:hi]...)
	case []int16:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint16(dst, uint16(x))
		}
	case []uint16:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint16(dst, x)
		}
	case []int32:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint32(dst, uint32(x))
		}
	case []uint32:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint32(dst, x)
		}
	case []int64:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint64(dst, uint64(x))
		}
	case []uint64:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint64(dst, x)
		}
	case []float32:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint32(dst, math.Float32bits(x))
		}
	case []float64:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint64(dst, math.Float64bits(x))
		}
	case []complex64:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint32(dst, math.Float32bits(real(x)))
			dst = le.AppendUint32(dst, math.Float32bits(imag(x)))
		}
	case []complex128:
		for _, x := range v[lo:hi] {
			dst = le.AppendUint64(dst, math.Float64bits(real(x)))
			dst = le.AppendUint64(dst, math.Float64bits(imag(x)))
		}
	}
	return dst
}
