// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

import "github.com/lumen-ml/lumen/internal/engine"

// Compile-time check that MappedBuffer implements Buffer.
var _ Buffer = (*MappedBuffer)(nil)

// MappedBuffer is a Buffer that is itself a host-visible view produced by
// mapping a region of a source buffer. Its window is stable for its whole
// lifetime, its storage is always Host, and it holds a strong reference to
// the source so the source cannot be destroyed while the view is live.
//
// The view performs exactly one matching Unmap on the source, at the last
// Release. Callers use it as a scope guard:
//
//	view, err := buffer.Map(src, 0, 256, buffer.AccessReadWrite)
//	if err != nil {
//	    return err
//	}
//	defer view.Release()
//
// Nested mapping and reallocation are not supported on the view.
type MappedBuffer struct {
	source Buffer
	data   []byte
	access Access
	refs   refCount
}

// Map maps [byteOffset, byteOffset+byteSize) of source with the given
// access mode and wraps the resulting window in a MappedBuffer. The source
// is retained until the view's last Release.
func Map(source Buffer, byteOffset, byteSize int, access Access) (*MappedBuffer, error) {
	if source == nil {
		return nil, NewInvalidArgument("buffer.Map", "nil source buffer")
	}
	data, err := source.Map(byteOffset, byteSize, access)
	if err != nil {
		return nil, err
	}
	source.Retain()
	m := &MappedBuffer{
		source: source,
		data:   data,
		access: access,
	}
	m.refs.init()
	return m, nil
}

// Engine identifies the source buffer's execution context.
func (m *MappedBuffer) Engine() engine.Engine {
	return m.source.Engine()
}

// Device identifies the hardware behind the source buffer's engine.
func (m *MappedBuffer) Device() *engine.Device {
	return m.source.Device()
}

// HasData always reports true; a mapped view exists to expose bytes.
func (m *MappedBuffer) HasData() bool {
	return true
}

// Data returns the mapped window. It is stable for the view's lifetime.
func (m *MappedBuffer) Data() []byte {
	return m.data
}

// ByteSize returns the size of the mapped region.
func (m *MappedBuffer) ByteSize() int {
	return len(m.data)
}

// Storage always reports Host; the window is host-visible by construction.
func (m *MappedBuffer) Storage() engine.Storage {
	return engine.StorageHost
}

// Access returns the access mode the view was mapped with.
func (m *MappedBuffer) Access() Access {
	return m.access
}

// Read copies len(dst) bytes starting at byteOffset into dst.
func (m *MappedBuffer) Read(byteOffset int, dst []byte, sync engine.SyncMode) error {
	const op = "MappedBuffer.Read"
	if err := checkBounds(op, byteOffset, len(dst), len(m.data)); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	if err := m.source.Engine().Copy(dst, m.data[byteOffset:byteOffset+len(dst)], sync); err != nil {
		return NewInvalidArgument(op, err.Error())
	}
	return nil
}

// Write copies len(src) bytes from src into the view at byteOffset.
func (m *MappedBuffer) Write(byteOffset int, src []byte, sync engine.SyncMode) error {
	const op = "MappedBuffer.Write"
	if err := checkBounds(op, byteOffset, len(src), len(m.data)); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	if err := m.source.Engine().Copy(m.data[byteOffset:byteOffset+len(src)], src, sync); err != nil {
		return NewInvalidArgument(op, err.Error())
	}
	return nil
}

// Map is unsupported; a mapped view cannot be mapped again.
func (m *MappedBuffer) Map(byteOffset, byteSize int, access Access) ([]byte, error) {
	return nil, NewUnsupported("MappedBuffer.Map", "cannot map a mapped view")
}

// Unmap always fails; nothing is ever mapped through the view itself.
func (m *MappedBuffer) Unmap(data []byte) error {
	return NewInvalidArgument("MappedBuffer.Unmap", "pointer is not currently mapped on this buffer")
}

// Realloc is unsupported; the view's window must stay stable for its
// lifetime.
func (m *MappedBuffer) Realloc(newByteSize int) error {
	return NewUnsupported("MappedBuffer.Realloc", "cannot reallocate a mapped view")
}

// Retain adds a strong reference.
func (m *MappedBuffer) Retain() {
	m.refs.retain()
}

// Release drops a strong reference. The last Release performs the single
// matching Unmap on the source and drops the source reference.
func (m *MappedBuffer) Release() {
	if !m.refs.release() {
		return
	}
	_ = m.source.Unmap(m.data)
	m.source.Release()
	m.data = nil
	m.source = nil
}

// A mapped view never reallocates, so attached views never need refreshing.
func (m *MappedBuffer) attach(v Updater) {}
func (m *MappedBuffer) detach(v Updater) {}
