// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides tensor descriptors and the buffer-backed tensor
// view for the Lumen compute pipeline.
package tensor

// DataType represents runtime type information for tensor elements.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float16
	Uint8
	Int32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float16:
		return 2
	case Uint8:
		return 1
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float16:
		return "float16"
	case Uint8:
		return "uint8"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// valid reports whether dt is a supported element type.
func (dt DataType) valid() bool {
	return dt >= Float32 && dt <= Int32
}
