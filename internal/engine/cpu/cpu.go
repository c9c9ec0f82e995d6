// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu implements the engine abstraction on host memory.
//
// Host and managed allocations are served by an Arrow allocator, which
// hands out 64-byte-aligned ranges suitable for SIMD kernels. Device
// storage is simulated: allocations are real host bytes, but they are
// classified as device-exclusive so that callers exercise the same staging
// paths they would need against a discrete accelerator.
package cpu

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/lumen-ml/lumen/internal/engine"
)

// Compile-time check that Engine implements engine.Engine.
var _ engine.Engine = (*Engine)(nil)

// allocation tracks one live range handed out by Allocate.
type allocation struct {
	base     uintptr
	byteSize int
	storage  engine.Storage
}

// Engine is a host-memory execution context with a single FIFO work queue.
// It is safe for concurrent use; the buffers built on top of it are not.
type Engine struct {
	device  *engine.Device
	alloc   memory.Allocator
	log     zerolog.Logger
	stream  *engine.Stream
	metrics engine.Metrics

	mu     sync.Mutex
	allocs map[uintptr]*allocation
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger installs a structured logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithAllocator overrides the host allocator. The default is the Arrow Go
// allocator, which aligns every range to 64 bytes.
func WithAllocator(a memory.Allocator) Option {
	return func(e *Engine) { e.alloc = a }
}

// New creates a CPU engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		device: &engine.Device{
			ID:       0,
			Name:     "CPU",
			TotalMem: systemMemory(),
			NumCores: runtime.NumCPU(),
		},
		alloc:  memory.NewGoAllocator(),
		log:    zerolog.Nop(),
		stream: engine.NewStream(),
		allocs: make(map[uintptr]*allocation),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Device identifies the hardware this engine executes on.
func (e *Engine) Device() *engine.Device {
	return e.device
}

// Allocate obtains byteSize bytes of the given storage class. A byteSize of
// zero yields a nil range.
func (e *Engine) Allocate(byteSize int, storage engine.Storage) ([]byte, error) {
	if byteSize < 0 {
		return nil, fmt.Errorf("cpu: negative allocation size %d", byteSize)
	}
	switch storage {
	case engine.StorageHost, engine.StorageDevice, engine.StorageManaged:
	default:
		return nil, fmt.Errorf("cpu: cannot allocate %s storage", storage)
	}
	if byteSize == 0 {
		return nil, nil
	}

	data := e.alloc.Allocate(byteSize)
	if data == nil {
		return nil, fmt.Errorf("cpu: allocation of %d bytes failed", byteSize)
	}
	data = data[:byteSize]

	a := &allocation{
		base:     uintptr(unsafe.Pointer(unsafe.SliceData(data))),
		byteSize: byteSize,
		storage:  storage,
	}
	e.mu.Lock()
	e.allocs[a.base] = a
	e.mu.Unlock()

	e.metrics.RecordAlloc(storage, byteSize)
	e.log.Debug().
		Str("storage", storage.String()).
		Int("bytes", byteSize).
		Msg("allocate")
	return data, nil
}

// Free releases memory previously returned by Allocate. Foreign or nil
// ranges are ignored.
func (e *Engine) Free(data []byte) {
	if len(data) == 0 {
		return
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(data)))

	e.mu.Lock()
	a, ok := e.allocs[base]
	if ok {
		delete(e.allocs, base)
	}
	e.mu.Unlock()
	if !ok {
		return
	}

	e.alloc.Free(data[:a.byteSize])
	e.metrics.RecordFree(a.storage, a.byteSize)
	e.log.Debug().
		Str("storage", a.storage.String()).
		Int("bytes", a.byteSize).
		Msg("free")
}

// Classify reports the storage class of a range handed out by Allocate.
// Interior pointers resolve to their containing allocation. Foreign memory
// classifies as undefined.
func (e *Engine) Classify(data []byte) engine.Storage {
	if len(data) == 0 {
		return engine.StorageUndefined
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(data)))

	e.mu.Lock()
	defer e.mu.Unlock()
	if a, ok := e.allocs[p]; ok {
		return a.storage
	}
	for _, a := range e.allocs {
		if p >= a.base && p < a.base+uintptr(a.byteSize) {
			return a.storage
		}
	}
	return engine.StorageUndefined
}

// Copy transfers len(src) bytes from src to dst in queue order.
func (e *Engine) Copy(dst, src []byte, sync engine.SyncMode) error {
	if len(dst) < len(src) {
		return fmt.Errorf("cpu: copy destination too small: %d < %d", len(dst), len(src))
	}
	n := len(src)
	e.stream.Submit(func() {
		copy(dst, src)
		e.metrics.RecordCopy(sync, n)
	})
	if sync == engine.Sync {
		e.stream.Synchronize()
	}
	e.log.Debug().
		Int("bytes", n).
		Str("mode", sync.String()).
		Msg("copy")
	return nil
}

// Submit enqueues a task on the engine's work queue.
func (e *Engine) Submit(task func()) {
	e.stream.Submit(task)
}

// Wait blocks until every previously submitted task has completed.
func (e *Engine) Wait() {
	e.stream.Synchronize()
}

// Close drains the work queue and stops the worker goroutine. The engine
// must not be used after Close.
func (e *Engine) Close() {
	e.stream.Close()
}
