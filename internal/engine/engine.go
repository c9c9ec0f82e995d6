// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine defines the execution-context abstraction that owns raw
// memory: allocation, storage classification, and queue-ordered transfers.
// Buffers in internal/buffer are bound to exactly one Engine for their
// entire lifetime and consume it through this interface.
package engine

// Storage classifies the addressability of an allocated byte range.
type Storage int

// Supported storage classes.
const (
	// StorageUndefined marks memory of unknown origin, e.g. a wrapped
	// caller-supplied range the engine has never seen.
	StorageUndefined Storage = iota
	// StorageHost is plain host memory, always directly addressable.
	StorageHost
	// StorageDevice is device-exclusive memory; host access requires a
	// staging copy.
	StorageDevice
	// StorageManaged is migratable memory addressable from both host and
	// device.
	StorageManaged
)

// String returns a human-readable storage class name.
func (s Storage) String() string {
	switch s {
	case StorageUndefined:
		return "undefined"
	case StorageHost:
		return "host"
	case StorageDevice:
		return "device"
	case StorageManaged:
		return "managed"
	default:
		return "unknown"
	}
}

// HostVisible reports whether memory of this class can be addressed
// directly from host code without a staging copy.
func (s Storage) HostVisible() bool {
	return s == StorageHost || s == StorageManaged
}

// SyncMode selects blocking behavior for transfers.
type SyncMode int

// Transfer synchronization modes.
const (
	// Sync blocks the caller until the transfer's effects are visible.
	Sync SyncMode = iota
	// Async enqueues the transfer and returns. Ordering is FIFO relative
	// to other operations issued on the same engine only.
	Async
)

// String returns a human-readable sync mode name.
func (m SyncMode) String() string {
	if m == Async {
		return "async"
	}
	return "sync"
}

// Device describes the hardware an engine executes on.
type Device struct {
	ID       int    // Unique device identifier
	Name     string // Human-readable device name
	TotalMem uint64 // Total available memory in bytes
	NumCores int    // Number of compute cores
}

// Engine is the execution context that buffers consume. It owns the
// allocator for its device and a single FIFO work queue; all transfers
// issued through one engine are applied in issue order.
//
// Implementations:
//   - internal/engine/cpu: host memory with simulated device-exclusive
//     storage for exercising staging paths
//
// Engines may be shared by many buffers concurrently; implementations must
// be safe for concurrent use. Individual buffers are not.
type Engine interface {
	// Device identifies the hardware this engine executes on.
	Device() *Device

	// Allocate obtains byteSize bytes of the given storage class.
	// The returned slice has len == cap == byteSize.
	Allocate(byteSize int, storage Storage) ([]byte, error)

	// Free releases memory previously returned by Allocate.
	// Freeing a nil or empty slice is a no-op.
	Free(data []byte)

	// Classify reports the storage class of memory previously returned by
	// Allocate, or StorageUndefined for foreign memory.
	Classify(data []byte) Storage

	// Copy transfers len(src) bytes from src to dst, queue-ordered with
	// every other operation issued on this engine. Direction (host-to-device,
	// device-to-host, ...) follows from the classification of the two
	// ranges. With Sync the call blocks until the bytes are visible; with
	// Async it returns after enqueueing.
	Copy(dst, src []byte, sync SyncMode) error

	// Submit enqueues an arbitrary task on the engine's work queue.
	Submit(task func())

	// Wait blocks until every previously submitted task has completed.
	Wait()
}
