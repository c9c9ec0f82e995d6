// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

import (
	"fmt"

	"github.com/lumen-ml/lumen/internal/engine"
)

// Compile-time check that USMBuffer implements Buffer.
var _ Buffer = (*USMBuffer)(nil)

// mappedRegion is the bookkeeping record for one outstanding host-visible
// window into the buffer, keyed in the mapping table by the address of the
// window's first byte.
type mappedRegion struct {
	hostData   []byte // the window handed to the caller
	devData    []byte // the buffer range behind it
	byteOffset int
	byteSize   int
	access     Access
	staged     bool // hostData is a temporary engine allocation
}

// USMBuffer is the unified-memory-backed Buffer implementation. It either
// owns an engine allocation of a chosen storage class or wraps a
// caller-supplied range it will never free.
//
// Mapping host-visible storage is zero-copy; mapping device-exclusive
// storage shuttles bytes through a staging region, synchronously, per the
// access mode. Every outstanding map call has exactly one entry in the
// mapping table, and the table must be empty before reallocation or
// destruction.
type USMBuffer struct {
	eng      engine.Engine
	data     []byte
	storage  engine.Storage
	external bool // wrapped caller memory: never freed, never reallocated

	refs   refCount
	views  attachments
	mapped map[uintptr]*mappedRegion
}

// NewUSM allocates a buffer of byteSize bytes in the given storage class.
// The buffer owns the allocation and frees it at the last Release.
func NewUSM(eng engine.Engine, byteSize int, storage engine.Storage) (*USMBuffer, error) {
	const op = "buffer.NewUSM"
	if eng == nil {
		return nil, NewInvalidArgument(op, "nil engine")
	}
	if byteSize < 0 {
		return nil, NewInvalidArgument(op, fmt.Sprintf("negative byte size %d", byteSize))
	}
	if storage == engine.StorageUndefined {
		return nil, NewInvalidArgument(op, "cannot allocate undefined storage")
	}
	data, err := eng.Allocate(byteSize, storage)
	if err != nil {
		return nil, NewAllocation(op, fmt.Sprintf("%d bytes of %s storage", byteSize, storage), err)
	}
	b := &USMBuffer{
		eng:     eng,
		data:    data,
		storage: storage,
		mapped:  make(map[uintptr]*mappedRegion),
	}
	b.refs.init()
	return b, nil
}

// WrapUSM adopts a caller-supplied range without taking ownership: the
// buffer never frees it and cannot reallocate it. When storage is
// StorageUndefined the engine is asked to classify the range; memory the
// engine does not recognize stays undefined and is treated as
// host-addressable.
func WrapUSM(eng engine.Engine, data []byte, storage engine.Storage) (*USMBuffer, error) {
	const op = "buffer.WrapUSM"
	if eng == nil {
		return nil, NewInvalidArgument(op, "nil engine")
	}
	if storage == engine.StorageUndefined {
		storage = eng.Classify(data)
	}
	b := &USMBuffer{
		eng:      eng,
		data:     data,
		storage:  storage,
		external: true,
		mapped:   make(map[uintptr]*mappedRegion),
	}
	b.refs.init()
	return b, nil
}

// Engine identifies the execution context this buffer is bound to.
func (b *USMBuffer) Engine() engine.Engine {
	return b.eng
}

// Device identifies the hardware behind the engine.
func (b *USMBuffer) Device() *engine.Device {
	return b.eng.Device()
}

// HasData reports whether the buffer exposes its backing bytes.
func (b *USMBuffer) HasData() bool {
	return b.data != nil
}

// Data returns the backing bytes. For device-exclusive storage the range
// must not be touched from host code; use Map.
func (b *USMBuffer) Data() []byte {
	return b.data
}

// ByteSize returns the buffer's current capacity in bytes.
func (b *USMBuffer) ByteSize() int {
	return len(b.data)
}

// Storage returns the buffer's storage class.
func (b *USMBuffer) Storage() engine.Storage {
	return b.storage
}

// Read copies len(dst) bytes starting at byteOffset into dst. The copy is
// issued on the buffer's engine queue, so it is ordered with every other
// transfer on the engine regardless of storage class.
func (b *USMBuffer) Read(byteOffset int, dst []byte, sync engine.SyncMode) error {
	const op = "Buffer.Read"
	if err := checkBounds(op, byteOffset, len(dst), len(b.data)); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	src := b.data[byteOffset : byteOffset+len(dst) : byteOffset+len(dst)]
	if err := b.eng.Copy(dst, src, sync); err != nil {
		return NewInvalidArgument(op, err.Error())
	}
	return nil
}

// Write copies len(src) bytes from src into the buffer at byteOffset, with
// the same ordering rules as Read.
func (b *USMBuffer) Write(byteOffset int, src []byte, sync engine.SyncMode) error {
	const op = "Buffer.Write"
	if err := checkBounds(op, byteOffset, len(src), len(b.data)); err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	dst := b.data[byteOffset : byteOffset+len(src) : byteOffset+len(src)]
	if err := b.eng.Copy(dst, src, sync); err != nil {
		return NewInvalidArgument(op, err.Error())
	}
	return nil
}

// Map returns a host-visible window over [byteOffset, byteOffset+byteSize).
//
// Host-visible storage maps zero-copy: the window is the buffer range
// itself, and a bookkeeping entry is still recorded so Unmap is uniform.
// Device-exclusive storage maps through a staging region: a temporary host
// allocation, populated synchronously from the device when the access mode
// requires copy-in.
func (b *USMBuffer) Map(byteOffset, byteSize int, access Access) ([]byte, error) {
	const op = "Buffer.Map"
	if !access.valid() {
		return nil, NewInvalidArgument(op, fmt.Sprintf("invalid access mode %d", int(access)))
	}
	if byteSize <= 0 {
		return nil, NewInvalidArgument(op, "mapped region must be non-empty")
	}
	if err := checkBounds(op, byteOffset, byteSize, len(b.data)); err != nil {
		return nil, err
	}

	devData := b.data[byteOffset : byteOffset+byteSize : byteOffset+byteSize]
	region := &mappedRegion{
		devData:    devData,
		byteOffset: byteOffset,
		byteSize:   byteSize,
		access:     access,
	}

	if b.storage == engine.StorageDevice {
		staging, err := b.eng.Allocate(byteSize, engine.StorageHost)
		if err != nil {
			return nil, NewAllocation(op, fmt.Sprintf("staging region of %d bytes", byteSize), err)
		}
		if access.copyIn() {
			if err := b.eng.Copy(staging, devData, engine.Sync); err != nil {
				b.eng.Free(staging)
				return nil, NewAllocation(op, "staging copy-in", err)
			}
		}
		region.hostData = staging
		region.staged = true
	} else {
		region.hostData = devData
	}

	key := dataKey(region.hostData)
	if _, exists := b.mapped[key]; exists {
		if region.staged {
			b.eng.Free(region.hostData)
		}
		return nil, NewInvalidArgument(op, fmt.Sprintf(
			"region at offset %d is already mapped", byteOffset))
	}
	b.mapped[key] = region
	return region.hostData, nil
}

// Unmap completes a mapped access. If the region was staged and its access
// mode publishes writes, the staging bytes are copied back to the buffer
// range synchronously before the staging allocation is released.
func (b *USMBuffer) Unmap(data []byte) error {
	const op = "Buffer.Unmap"
	if len(data) == 0 {
		return NewInvalidArgument(op, "nil or empty pointer")
	}
	key := dataKey(data)
	region, ok := b.mapped[key]
	if !ok {
		return NewInvalidArgument(op, "pointer is not currently mapped on this buffer")
	}
	return b.unmapRegion(key, region)
}

func (b *USMBuffer) unmapRegion(key uintptr, region *mappedRegion) error {
	if region.staged && region.access.copyOut() {
		if err := b.eng.Copy(region.devData, region.hostData, engine.Sync); err != nil {
			return NewInvalidArgument("Buffer.Unmap", err.Error())
		}
	}
	if region.staged {
		b.eng.Free(region.hostData)
	}
	delete(b.mapped, key)
	return nil
}

// UnmapAll force-unmaps every outstanding region with the same copy-out
// rules as Unmap, leaving the mapping table empty. Used before
// destruction.
func (b *USMBuffer) UnmapAll() error {
	var firstErr error
	for key, region := range b.mapped {
		if err := b.unmapRegion(key, region); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// MappedCount returns the number of outstanding mapped regions.
func (b *USMBuffer) MappedCount() int {
	return len(b.mapped)
}

// Realloc discards the contents and establishes fresh backing storage of
// newByteSize bytes in the same storage class. A failing Realloc leaves
// the prior allocation and every attached view untouched. On success every
// attached view has its UpdatePtr invoked exactly once before Realloc
// returns.
func (b *USMBuffer) Realloc(newByteSize int) error {
	const op = "Buffer.Realloc"
	if b.external {
		return NewUnsupported(op, "buffer wraps externally owned memory")
	}
	if len(b.mapped) > 0 {
		return NewPrecondition(op, fmt.Sprintf("%d mapped regions outstanding", len(b.mapped)))
	}
	if newByteSize < 0 {
		return NewInvalidArgument(op, fmt.Sprintf("negative byte size %d", newByteSize))
	}
	newData, err := b.eng.Allocate(newByteSize, b.storage)
	if err != nil {
		return NewAllocation(op, fmt.Sprintf("%d bytes of %s storage", newByteSize, b.storage), err)
	}
	b.eng.Free(b.data)
	b.data = newData
	return b.views.notifyAll()
}

// Retain adds a strong reference.
func (b *USMBuffer) Retain() {
	b.refs.retain()
}

// Release drops a strong reference. The last Release force-unmaps any
// outstanding regions and, unless the buffer wraps external memory, frees
// the allocation.
func (b *USMBuffer) Release() {
	if !b.refs.release() {
		return
	}
	_ = b.UnmapAll()
	if !b.external {
		b.eng.Free(b.data)
	}
	b.data = nil
}

func (b *USMBuffer) attach(v Updater) {
	b.views.attach(v)
}

func (b *USMBuffer) detach(v Updater) {
	b.views.detach(v)
}
