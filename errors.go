// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package arrayio

import (
	"errors"

	"github.com/nlpodyssey/arrayio/buffer"
	"github.com/nlpodyssey/arrayio/codec"
)

// Errors returned by this package, to be matched with errors.Is.
var (
	// ErrFileNotFound is returned when the path given to FromFile does not
	// exist or cannot be opened for reading.
	ErrFileNotFound = errors.New("file not found")
	// ErrUnsupportedFormat is returned when no codec claims the file
	// extension and none recognizes its header.
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat
	// ErrFormat is returned when a file is malformed, truncated or changed
	// since it was opened. The concrete error is a *codec.FormatError.
	ErrFormat = codec.ErrFormat
	// ErrShapeMismatch is returned when the number of dimensions requested
	// from Get differs from the one of the array.
	ErrShapeMismatch = buffer.ErrShapeMismatch
	// ErrTypeCast is returned when the stored elements cannot be converted
	// to the requested element type.
	ErrTypeCast = buffer.ErrTypeCast
)
