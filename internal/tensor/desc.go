// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "fmt"

// Desc describes a tensor's element type and dimensions, independent of
// where its bytes live. It determines the byte footprint a buffer region
// must provide.
type Desc struct {
	DType DataType
	Shape Shape
}

// Validate checks the descriptor for a supported data type and positive
// dimensions.
func (d Desc) Validate() error {
	if !d.DType.valid() {
		return fmt.Errorf("invalid data type %d", int(d.DType))
	}
	return d.Shape.Validate()
}

// NumElements returns the total number of elements.
func (d Desc) NumElements() int {
	return d.Shape.NumElements()
}

// ByteSize returns the footprint the descriptor requires from its backing
// buffer.
func (d Desc) ByteSize() int {
	return d.NumElements() * d.DType.Size()
}
