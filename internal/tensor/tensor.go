// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"fmt"
	"unsafe"

	"github.com/lumen-ml/lumen/internal/buffer"
)

// Compile-time check that Tensor participates in reallocation refresh.
var _ buffer.Updater = (*Tensor)(nil)

// Tensor is a typed view over a region of a Buffer. It embeds
// buffer.Memory, so it keeps its buffer alive, and caches the byte window
// for its region; the cache is recomputed through UpdatePtr whenever the
// buffer reallocates.
type Tensor struct {
	buffer.Memory
	desc Desc
	data []byte
}

// NewFromBuffer creates a tensor view of desc over buf starting at
// byteOffset. Fails with ErrOutOfBounds when the descriptor's footprint
// does not fit the buffer's current capacity.
func NewFromBuffer(buf buffer.Buffer, desc Desc, byteOffset int) (*Tensor, error) {
	const op = "tensor.NewFromBuffer"
	if buf == nil {
		return nil, buffer.NewInvalidArgument(op, "nil buffer")
	}
	if err := desc.Validate(); err != nil {
		return nil, buffer.NewInvalidArgument(op, err.Error())
	}
	if byteOffset < 0 || byteOffset > buf.ByteSize()-desc.ByteSize() {
		return nil, buffer.NewOutOfBounds(op, fmt.Sprintf(
			"tensor of %d bytes at offset %d exceeds buffer size %d",
			desc.ByteSize(), byteOffset, buf.ByteSize()))
	}

	t := &Tensor{desc: desc}
	if err := t.Bind(buf, byteOffset, t); err != nil {
		return nil, err
	}
	if err := t.UpdatePtr(); err != nil {
		t.Close()
		return nil, err
	}
	return t, nil
}

// Desc returns the tensor's descriptor.
func (t *Tensor) Desc() Desc {
	return t.desc
}

// DType returns the tensor's element type.
func (t *Tensor) DType() DataType {
	return t.desc.DType
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.desc.Shape
}

// ByteSize returns the tensor's footprint in bytes.
func (t *Tensor) ByteSize() int {
	return t.desc.ByteSize()
}

// Data returns the cached byte window over the tensor's region, or nil
// when the buffer exposes no data. The window is valid until the next
// reallocation of the buffer.
func (t *Tensor) Data() []byte {
	return t.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (t *Tensor) AsFloat32() []float32 {
	if t.desc.DType != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", t.desc.DType))
	}
	if len(t.data) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.desc.NumElements())
}

// AsUint8 interprets the data as []uint8.
// Panics if the tensor's dtype is not Uint8.
func (t *Tensor) AsUint8() []uint8 {
	if t.desc.DType != Uint8 {
		panic(fmt.Sprintf("tensor dtype is %s, not uint8", t.desc.DType))
	}
	return t.data
}

// UpdatePtr recomputes the cached window from the buffer's current storage
// and the tensor's byte offset. The buffer invokes it after every
// successful Realloc, before Realloc returns.
func (t *Tensor) UpdatePtr() error {
	const op = "Tensor.UpdatePtr"
	buf := t.Buffer()
	if buf == nil {
		return buffer.NewPrecondition(op, "tensor is not bound to a buffer")
	}
	if !buf.HasData() {
		t.data = nil
		return nil
	}
	off, size := t.ByteOffset(), t.desc.ByteSize()
	if off > buf.ByteSize()-size {
		t.data = nil
		return buffer.NewOutOfBounds(op, fmt.Sprintf(
			"tensor of %d bytes at offset %d exceeds buffer size %d", size, off, buf.ByteSize()))
	}
	t.data = buf.Data()[off : off+size : off+size]
	return nil
}

// Close detaches the tensor from its buffer and drops the strong
// reference.
func (t *Tensor) Close() {
	t.Memory.Close()
	t.data = nil
}
