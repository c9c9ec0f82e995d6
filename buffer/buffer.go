// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package buffer provides the public API for the memory buffers that back
// tensors and images in the Lumen framework.
//
// The package defines:
//   - Buffer: the polymorphic byte-range capability bound to one engine
//   - USMBuffer: the unified-memory implementation (owning or wrapping)
//   - MappedBuffer: a scoped host-visible view over a buffer region
//   - Memory: the base type for typed views that survive reallocation
//   - Access: the map/unmap access-mode contracts
//
// Example:
//
//	eng := cpu.New()
//	defer eng.Close()
//
//	buf, err := buffer.New(eng, 1024, engine.StorageDevice)
//	if err != nil {
//	    return err
//	}
//	defer buf.Release()
//
//	view, err := buffer.Map(buf, 0, 256, buffer.AccessWrite)
//	if err != nil {
//	    return err
//	}
//	defer view.Release()
//	copy(view.Data(), payload)
package buffer

import (
	"github.com/lumen-ml/lumen/internal/buffer"
	"github.com/lumen-ml/lumen/internal/engine"
)

// Type aliases for public API

// Access is the access-mode contract governing a mapped region.
type Access = buffer.Access

// Access modes.
const (
	AccessRead         Access = buffer.AccessRead
	AccessWrite        Access = buffer.AccessWrite
	AccessReadWrite    Access = buffer.AccessReadWrite
	AccessWriteDiscard Access = buffer.AccessWriteDiscard
)

// Buffer is a byte range owned by an engine.
type Buffer = buffer.Buffer

// USMBuffer is the unified-memory-backed Buffer implementation.
type USMBuffer = buffer.USMBuffer

// MappedBuffer is a host-visible view produced by mapping a buffer region.
type MappedBuffer = buffer.MappedBuffer

// Memory is the base type for typed views backed by a buffer region.
type Memory = buffer.Memory

// Updater is implemented by typed views that cache an address derived
// from their buffer's storage.
type Updater = buffer.Updater

// Error is a structured buffer subsystem error.
type Error = buffer.Error

// ErrorKind categorizes buffer subsystem failures.
type ErrorKind = buffer.ErrorKind

// Error kinds.
const (
	KindOutOfBounds     ErrorKind = buffer.KindOutOfBounds
	KindInvalidArgument ErrorKind = buffer.KindInvalidArgument
	KindUnsupported     ErrorKind = buffer.KindUnsupported
	KindPrecondition    ErrorKind = buffer.KindPrecondition
	KindAllocation      ErrorKind = buffer.KindAllocation
)

// Kind sentinels for errors.Is.
var (
	ErrOutOfBounds     = buffer.ErrOutOfBounds
	ErrInvalidArgument = buffer.ErrInvalidArgument
	ErrUnsupported     = buffer.ErrUnsupported
	ErrPrecondition    = buffer.ErrPrecondition
	ErrAllocation      = buffer.ErrAllocation
)

// New allocates a buffer of byteSize bytes in the given storage class on
// eng. The buffer owns the allocation and frees it at the last Release.
func New(eng engine.Engine, byteSize int, storage engine.Storage) (*USMBuffer, error) {
	return buffer.NewUSM(eng, byteSize, storage)
}

// Wrap adopts a caller-supplied range without taking ownership; the buffer
// never frees it and cannot reallocate it.
func Wrap(eng engine.Engine, data []byte, storage engine.Storage) (*USMBuffer, error) {
	return buffer.WrapUSM(eng, data, storage)
}

// Map maps a region of source and wraps the window in a scoped
// MappedBuffer; its last Release performs the single matching Unmap.
func Map(source Buffer, byteOffset, byteSize int, access Access) (*MappedBuffer, error) {
	return buffer.Map(source, byteOffset, byteSize, access)
}
