// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package buffer

import "errors"

var (
	// ErrShapeMismatch is returned when a typed view is requested with a
	// number of dimensions different from the array's.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrTypeCast is returned for conversions between incompatible element
	// categories, i.e. from a complex type to any non-complex type.
	ErrTypeCast = errors.New("illegal element type cast")
)
