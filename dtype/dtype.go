// Copyright 2023 The NLP Odyssey Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dtype enumerates the scalar element types an array can hold.
package dtype

import (
	"fmt"
)

// ElementType identifies the scalar type of every element of an array.
//
// Values are persisted by the tensor codec: never reorder or renumber them.
type ElementType uint8

const (
	// Bool represents an 8-bit boolean element type.
	Bool ElementType = iota + 1
	// Int8 represents an 8-bit signed integer element type.
	Int8
	// Uint8 represents an 8-bit unsigned integer element type.
	Uint8
	// Int16 represents a 16-bit signed integer element type.
	Int16
	// Uint16 represents a 16-bit unsigned integer element type.
	Uint16
	// Int32 represents a 32-bit signed integer element type.
	Int32
	// Uint32 represents a 32-bit unsigned integer element type.
	Uint32
	// Int64 represents a 64-bit signed integer element type.
	Int64
	// Uint64 represents a 64-bit unsigned integer element type.
	Uint64
	// Float32 represents a 32-bit floating point element type.
	Float32
	// Float64 represents a 64-bit floating point element type.
	Float64
	// Complex64 represents a complex number made of two Float32.
	Complex64
	// Complex128 represents a complex number made of two Float64.
	Complex128
)

var (
	elementTypeToString = [...]string{
		Bool:       "bool",
		Int8:       "int8",
		Uint8:      "uint8",
		Int16:      "int16",
		Uint16:     "uint16",
		Int32:      "int32",
		Uint32:     "uint32",
		Int64:      "int64",
		Uint64:     "uint64",
		Float32:    "float32",
		Float64:    "float64",
		Complex64:  "complex64",
		Complex128: "complex128",
	}
	elementTypeToSize = [...]int{
		Bool:       1,
		Int8:       1,
		Uint8:      1,
		Int16:      2,
		Uint16:     2,
		Int32:      4,
		Uint32:     4,
		Int64:      8,
		Uint64:     8,
		Float32:    4,
		Float64:    8,
		Complex64:  8,
		Complex128: 16,
	}
	stringToElementType = map[string]ElementType{
		"bool":       Bool,
		"int8":       Int8,
		"uint8":      Uint8,
		"int16":      Int16,
		"uint16":     Uint16,
		"int32":      Int32,
		"uint32":     Uint32,
		"int64":      Int64,
		"uint64":     Uint64,
		"float32":    Float32,
		"float64":    Float64,
		"complex64":  Complex64,
		"complex128": Complex128,
	}
)

// All returns every valid ElementType, in numeric order.
func All() []ElementType {
	all := make([]ElementType, 0, Complex128)
	for dt := Bool; dt <= Complex128; dt++ {
		all = append(all, dt)
	}
	return all
}

// Validate returns an error if the ElementType is not valid, otherwise nil.
func (dt ElementType) Validate() error {
	if dt == 0 || dt > Complex128 {
		return fmt.Errorf("invalid ElementType(%d)", dt)
	}
	return nil
}

// String returns a string representation of an ElementType.
func (dt ElementType) String() string {
	if err := dt.Validate(); err != nil {
		return err.Error()
	}
	return elementTypeToString[dt]
}

// Size returns the size in bytes of one element of this type,
// or -1 if the ElementType value is invalid.
func (dt ElementType) Size() int {
	if err := dt.Validate(); err != nil {
		return -1
	}
	return elementTypeToSize[dt]
}

// IsInteger reports whether dt is a signed or unsigned integer type.
func (dt ElementType) IsInteger() bool {
	return dt >= Int8 && dt <= Uint64
}

// IsSigned reports whether dt is a signed integer type.
func (dt ElementType) IsSigned() bool {
	switch dt {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsFloat reports whether dt is a real floating point type.
func (dt ElementType) IsFloat() bool {
	return dt == Float32 || dt == Float64
}

// IsComplex reports whether dt is a complex type.
func (dt ElementType) IsComplex() bool {
	return dt == Complex64 || dt == Complex128
}

// MarshalText satisfies encoding.TextMarshaler interface.
func (dt ElementType) MarshalText() ([]byte, error) {
	if err := dt.Validate(); err != nil {
		return nil, err
	}
	return []byte(elementTypeToString[dt]), nil
}

// UnmarshalText satisfies encoding.TextUnmarshaler interface.
func (dt *ElementType) UnmarshalText(text []byte) error {
	v, ok := stringToElementType[string(text)]
	if !ok {
		return fmt.Errorf("failed to text-unmarshal ElementType from value %q", string(text))
	}
	*dt = v
	return nil
}

// Parse returns the ElementType named s (e.g. "int8", "float64").
func Parse(s string) (ElementType, error) {
	var dt ElementType
	err := dt.UnmarshalText([]byte(s))
	return dt, err
}
