// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor descriptors and
// buffer-backed tensor views in the Lumen framework.
//
// Example:
//
//	buf, _ := buffer.New(eng, 4096, engine.StorageHost)
//	defer buf.Release()
//
//	t, err := tensor.NewFromBuffer(buf, tensor.Desc{
//	    DType: tensor.Float32,
//	    Shape: tensor.Shape{3, 64, 64},
//	}, 0)
//	if err != nil {
//	    return err
//	}
//	defer t.Close()
package tensor

import (
	"github.com/lumen-ml/lumen/internal/buffer"
	"github.com/lumen-ml/lumen/internal/tensor"
)

// Type aliases for public API

// DataType represents runtime type information for tensor elements.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float16 DataType = tensor.Float16
	Uint8   DataType = tensor.Uint8
	Int32   DataType = tensor.Int32
)

// Shape represents the dimensions of a tensor.
type Shape = tensor.Shape

// Desc describes a tensor's element type and dimensions.
type Desc = tensor.Desc

// Tensor is a typed view over a region of a Buffer.
type Tensor = tensor.Tensor

// NewFromBuffer creates a tensor view of desc over buf starting at
// byteOffset, validating that the descriptor's footprint fits the
// buffer's current capacity.
func NewFromBuffer(buf buffer.Buffer, desc Desc, byteOffset int) (*Tensor, error) {
	return tensor.NewFromBuffer(buf, desc, byteOffset)
}
