// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/dtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCodec recognizes streams starting with its signature.
type fakeCodec struct {
	name      string
	exts      []string
	signature []byte
}

func (c *fakeCodec) Name() string         { return c.name }
func (c *fakeCodec) Extensions() []string { return c.exts }
func (c *fakeCodec) Probe(head []byte) bool {
	return len(c.signature) > 0 && bytes.HasPrefix(head, c.signature)
}
func (c *fakeCodec) ReadHeader(io.Reader) (Header, error) {
	return Header{}, errors.New("not implemented")
}
func (c *fakeCodec) ReadData(io.Reader, dtype.ElementType, buffer.Shape) (buffer.Buffer, error) {
	return buffer.Buffer{}, errors.New("not implemented")
}
func (c *fakeCodec) Write(io.Writer, dtype.ElementType, buffer.Shape, buffer.Buffer) error {
	return errors.New("not implemented")
}

func TestNewRegistry(t *testing.T) {
	a := &fakeCodec{name: "a", exts: []string{".a", "A2"}}
	b := &fakeCodec{name: "b", exts: []string{".b"}}
	r, err := NewRegistry(a, b)
	require.NoError(t, err)
	assert.Equal(t, []Codec{a, b}, r.Codecs())
	assert.Equal(t, []string{".a", ".a2", ".b"}, r.Extensions())

	_, err = NewRegistry(a, &fakeCodec{name: "c", exts: []string{".a"}})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("idempotent for the same instance", func(t *testing.T) {
		a := &fakeCodec{name: "a", exts: []string{".a"}}
		r, err := NewRegistry()
		require.NoError(t, err)
		require.NoError(t, r.Register(a))
		require.NoError(t, r.Register(a))
		assert.Len(t, r.Codecs(), 1)
	})

	t.Run("extension conflict", func(t *testing.T) {
		r, err := NewRegistry(&fakeCodec{name: "a", exts: []string{".x"}})
		require.NoError(t, err)
		err = r.Register(&fakeCodec{name: "b", exts: []string{".y", ".X"}})
		assert.EqualError(t, err, `codec conflict: extension ".x" already claimed by codec "a"`)
		assert.ErrorIs(t, err, ErrConflict)

		_, err = r.Resolve(".y")
		assert.ErrorIs(t, err, ErrUnsupportedFormat, "a failed registration must not be partially applied")
		assert.Len(t, r.Codecs(), 1)
	})

	t.Run("name conflict", func(t *testing.T) {
		r, err := NewRegistry(&fakeCodec{name: "a", exts: []string{".x"}})
		require.NoError(t, err)
		err = r.Register(&fakeCodec{name: "a", exts: []string{".y"}})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("invalid codecs", func(t *testing.T) {
		r, err := NewRegistry()
		require.NoError(t, err)
		assert.Error(t, r.Register(nil))
		assert.Error(t, r.Register(&fakeCodec{name: "e", exts: []string{" "}}))
	})
}

func TestRegistry_Resolve(t *testing.T) {
	a := &fakeCodec{name: "a", exts: []string{".tensor"}}
	r, err := NewRegistry(a)
	require.NoError(t, err)

	for _, name := range []string{"x.tensor", "dir/sub/x.TENSOR", ".tensor", "tensor", "/abs/path.v2.tensor"} {
		c, err := r.Resolve(name)
		require.NoError(t, err, name)
		assert.Same(t, a, c, name)
	}

	for _, name := range []string{"x.unknownext", "", ".", "dir/tensor", "x.tensor.bak"} {
		c, err := r.Resolve(name)
		assert.ErrorIs(t, err, ErrUnsupportedFormat, name)
		assert.Nil(t, c, name)
	}
}

func TestRegistry_Detect(t *testing.T) {
	a := &fakeCodec{name: "a", exts: []string{".a"}, signature: []byte("AAA")}
	b := &fakeCodec{name: "b", exts: []string{".b"}, signature: []byte("BBB")}
	r, err := NewRegistry(a, b)
	require.NoError(t, err)

	c, err := r.Detect([]byte("BBBxyz"))
	require.NoError(t, err)
	assert.Same(t, b, c)

	c, err = r.Detect([]byte("AAA"))
	require.NoError(t, err)
	assert.Same(t, a, c)

	_, err = r.Detect([]byte("CCC"))
	assert.EqualError(t, err, "unsupported format: no codec recognizes the header")
	_, err = r.Detect(nil)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistry_Alias(t *testing.T) {
	a := &fakeCodec{name: "a", exts: []string{".a"}}
	b := &fakeCodec{name: "b", exts: []string{".b"}}
	r, err := NewRegistry(a, b)
	require.NoError(t, err)

	require.NoError(t, r.Alias("t5", "a"))
	c, err := r.Resolve("file.t5")
	require.NoError(t, err)
	assert.Same(t, a, c)

	require.NoError(t, r.Alias(".a", "a"))
	assert.ErrorIs(t, r.Alias(".b", "a"), ErrConflict)
	assert.ErrorIs(t, r.Alias(".c", "missing"), ErrUnsupportedFormat)
	assert.Error(t, r.Alias("", "a"))
}

func TestRegistry_Lookup(t *testing.T) {
	a := &fakeCodec{name: "a", exts: []string{".a"}}
	r, err := NewRegistry(a)
	require.NoError(t, err)

	c, ok := r.Lookup("a")
	assert.True(t, ok)
	assert.Same(t, a, c)

	_, ok = r.Lookup("b")
	assert.False(t, ok)
}

func TestRegistry_ConcurrentReads(t *testing.T) {
	a := &fakeCodec{name: "a", exts: []string{".a"}, signature: []byte("A")}
	r, err := NewRegistry(a)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c, err := r.Resolve("x.a")
				assert.NoError(t, err)
				assert.Same(t, a, c)
				c, err = r.Detect([]byte("A"))
				assert.NoError(t, err)
				assert.Same(t, a, c)
			}
		}()
	}
	wg.Wait()
}
