// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

// Memory is the base for typed views (tensors, images) that reference a
// region of a Buffer. It records the buffer plus a byte offset into it and
// wires the reallocation-notification protocol: the view holds a strong
// (retained) reference to its buffer, while the buffer keeps only a
// notification entry for the view, which is what prevents an ownership
// cycle.
//
// Memory supplies no UpdatePtr itself; it has no knowledge of the derived
// layout. Each concrete view embeds Memory, passes itself to Bind, and
// recomputes its cached window from Buffer().Data() and ByteOffset()
// whenever UpdatePtr is invoked after a successful Realloc.
//
// The zero value is a detached Memory with no buffer and offset zero, to
// be bound later by the derived type's own logic.
type Memory struct {
	buffer     Buffer
	byteOffset int
	view       Updater
}

// Bind attaches the view to buf at byteOffset, retaining buf for the
// lifetime of the binding. view is the derived object whose UpdatePtr will
// be invoked after every successful Realloc of buf.
func (m *Memory) Bind(buf Buffer, byteOffset int, view Updater) error {
	if m.buffer != nil {
		return NewPrecondition("Memory.Bind", "already bound to a buffer")
	}
	if buf == nil || view == nil {
		return NewInvalidArgument("Memory.Bind", "nil buffer or view")
	}
	if byteOffset < 0 || byteOffset > buf.ByteSize() {
		return NewOutOfBounds("Memory.Bind", "byte offset exceeds buffer size")
	}
	buf.Retain()
	buf.attach(view)
	m.buffer = buf
	m.byteOffset = byteOffset
	m.view = view
	return nil
}

// Buffer returns the bound buffer, or nil when detached.
func (m *Memory) Buffer() Buffer {
	return m.buffer
}

// ByteOffset returns the view's byte offset into its buffer.
func (m *Memory) ByteOffset() int {
	return m.byteOffset
}

// Bound reports whether the Memory is attached to a buffer.
func (m *Memory) Bound() bool {
	return m.buffer != nil
}

// Close detaches from the buffer and drops the strong reference. Safe to
// call on a detached Memory.
func (m *Memory) Close() {
	if m.buffer == nil {
		return
	}
	m.buffer.detach(m.view)
	m.buffer.Release()
	m.buffer = nil
	m.byteOffset = 0
	m.view = nil
}
