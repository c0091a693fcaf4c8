// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat is returned when no registered codec claims a
	// file extension and no codec recognizes the stream header.
	ErrUnsupportedFormat = errors.New("unsupported format")
	// ErrFormat is matched (with errors.Is) by every *FormatError.
	ErrFormat = errors.New("format error")
	// ErrConflict is returned when registering a codec for an extension
	// already claimed by a different codec.
	ErrConflict = errors.New("codec conflict")
)

// FormatError reports a malformed, truncated or inconsistent stream.
type FormatError struct {
	// Codec is the name of the codec that detected the problem.
	Codec string
	// Field names the offending part of the format, e.g. "ndim",
	// "dims[1]", "data".
	Field string
	// Err describes the problem.
	Err error
}

// NewFormatError returns a *FormatError for the given codec and field.
func NewFormatError(codec, field string, format string, args ...any) *FormatError {
	return &FormatError{Codec: codec, Field: field, Err: fmt.Errorf(format, args...)}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Codec, e.Field, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is makes every FormatError match ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
