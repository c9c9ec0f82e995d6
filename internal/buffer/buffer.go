// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package buffer implements the byte-addressable memory abstraction that
// backs tensors and images: a polymorphic Buffer contract, its
// unified-memory implementation (USMBuffer), a scoped host-visible view
// (MappedBuffer), and the Memory base type that lets typed views survive
// buffer reallocation.
//
// A Buffer is bound to one engine for its whole lifetime and is not
// internally synchronized; callers serialize access to a given instance.
// Lifetime is reference counted: Retain/Release pairs, with the backing
// storage released at the last Release.
package buffer

import (
	"fmt"
	"unsafe"

	"github.com/lumen-ml/lumen/internal/engine"
)

// Updater is implemented by typed views (tensors, images) that cache an
// address derived from their buffer's storage. After a successful Realloc
// the buffer invokes UpdatePtr on every attached view, before Realloc
// returns, so each recomputes its cached window from Data() and its own
// byte offset.
type Updater interface {
	UpdatePtr() error
}

// Buffer is a byte range owned by an engine. Not every backend supports
// every operation; unsupported ones fail with ErrUnsupported rather than
// panic, which is how capability differences between storage backends are
// surfaced.
//
// The registry of attached views (see Memory) is notification-only: it
// never extends the buffer's lifetime. Views hold the strong reference in
// the other direction.
type Buffer interface {
	// Engine identifies the execution context this buffer is bound to.
	Engine() engine.Engine
	// Device identifies the hardware behind the engine.
	Device() *engine.Device

	// HasData reports whether the buffer exposes its backing bytes.
	// Invariant: HasData() == (Data() != nil).
	HasData() bool
	// Data returns the backing bytes, or nil if HasData is false. The
	// window is valid only until the next Realloc. For device-exclusive
	// storage the bytes must not be touched from host code; use Map.
	Data() []byte
	// ByteSize returns the buffer's current capacity in bytes.
	ByteSize() int
	// Storage returns the buffer's storage class.
	Storage() engine.Storage

	// Read copies len(dst) bytes starting at byteOffset into dst. Fails
	// with ErrOutOfBounds if the range exceeds the current capacity. With
	// engine.Sync the call blocks until dst is populated; with
	// engine.Async it may return first, ordered only relative to other
	// operations on the same engine.
	Read(byteOffset int, dst []byte, sync engine.SyncMode) error
	// Write copies len(src) bytes from src into the buffer starting at
	// byteOffset, with the same bounds and ordering rules as Read.
	Write(byteOffset int, src []byte, sync engine.SyncMode) error

	// Map returns a host-visible window over [byteOffset,
	// byteOffset+byteSize), valid until the matching Unmap. The same
	// region must not be mapped twice concurrently through the same
	// pointer. Buffer kinds that cannot map fail with ErrUnsupported.
	Map(byteOffset, byteSize int, access Access) ([]byte, error)
	// Unmap completes a mapped access, performing any copy-out mandated
	// by the access mode, and invalidates the window. Fails with
	// ErrInvalidArgument if data was not produced by an outstanding Map
	// on this buffer.
	Unmap(data []byte) error

	// Realloc discards the contents and establishes fresh backing storage
	// of newByteSize bytes in the same storage class. Every previously
	// obtained window is invalidated and every attached view is refreshed
	// via UpdatePtr before Realloc returns. Fails with ErrPrecondition
	// while mappings are outstanding and with ErrUnsupported on buffer
	// kinds that cannot reallocate.
	Realloc(newByteSize int) error

	// Retain adds a strong reference.
	Retain()
	// Release drops a strong reference, destroying the buffer (forced
	// unmap of outstanding regions, then freeing owned storage) when the
	// last one is gone.
	Release()

	// Views backed by the buffer register themselves for reallocation
	// notifications. No-ops for buffer kinds that never reallocate.
	attach(v Updater)
	detach(v Updater)
}

// checkBounds validates [byteOffset, byteOffset+byteSize) against capacity.
func checkBounds(op string, byteOffset, byteSize, capacity int) error {
	if byteOffset < 0 || byteSize < 0 || byteOffset > capacity-byteSize {
		return NewOutOfBounds(op, fmt.Sprintf(
			"range [%d, %d) exceeds buffer size %d", byteOffset, byteOffset+byteSize, capacity))
	}
	return nil
}

// dataKey is the identity of a mapped window: the address of its first
// byte. Mapped-region bookkeeping is keyed by it.
func dataKey(data []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))
}

// attachments is the notification-only registry of views backed by a
// buffer. It holds no strong references; it exists solely to fan out
// refresh callbacks after reallocation.
type attachments struct {
	views map[Updater]struct{}
}

func (r *attachments) attach(v Updater) {
	if r.views == nil {
		r.views = make(map[Updater]struct{})
	}
	r.views[v] = struct{}{}
}

func (r *attachments) detach(v Updater) {
	delete(r.views, v)
}

// notifyAll invokes UpdatePtr on every attached view exactly once. All
// views are refreshed even when one fails; the first error is returned.
func (r *attachments) notifyAll() error {
	var firstErr error
	for v := range r.views {
		if err := v.UpdatePtr(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
