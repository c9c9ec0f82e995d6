// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

import (
	"errors"
	"unsafe"

	"github.com/lumen-ml/lumen/internal/engine"
)

// Verify that mockEngine implements engine.Engine.
var _ engine.Engine = (*mockEngine)(nil)

type mockAlloc struct {
	base     uintptr
	byteSize int
	storage  engine.Storage
}

// mockEngine is a deterministic engine for exercising buffer bookkeeping:
// copies run immediately, and every allocation and free is recorded so
// tests can assert on staging lifecycles and ownership rules.
type mockEngine struct {
	device        *engine.Device
	allocs        map[uintptr]*mockAlloc
	freed         int
	copies        int
	failNextAlloc bool
}

func newMockEngine() *mockEngine {
	return &mockEngine{
		device: &engine.Device{ID: 0, Name: "mock", NumCores: 1},
		allocs: make(map[uintptr]*mockAlloc),
	}
}

func (e *mockEngine) Device() *engine.Device { return e.device }

func (e *mockEngine) Allocate(byteSize int, storage engine.Storage) ([]byte, error) {
	if e.failNextAlloc {
		e.failNextAlloc = false
		return nil, errors.New("mock: out of memory")
	}
	if byteSize == 0 {
		return nil, nil
	}
	data := make([]byte, byteSize)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	e.allocs[base] = &mockAlloc{base: base, byteSize: byteSize, storage: storage}
	return data, nil
}

func (e *mockEngine) Free(data []byte) {
	if len(data) == 0 {
		return
	}
	base := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	if _, ok := e.allocs[base]; ok {
		delete(e.allocs, base)
		e.freed++
	}
}

func (e *mockEngine) Classify(data []byte) engine.Storage {
	if len(data) == 0 {
		return engine.StorageUndefined
	}
	p := uintptr(unsafe.Pointer(unsafe.SliceData(data)))
	for _, a := range e.allocs {
		if p >= a.base && p < a.base+uintptr(a.byteSize) {
			return a.storage
		}
	}
	return engine.StorageUndefined
}

func (e *mockEngine) Copy(dst, src []byte, sync engine.SyncMode) error {
	if len(dst) < len(src) {
		return errors.New("mock: copy destination too small")
	}
	copy(dst, src)
	e.copies++
	return nil
}

func (e *mockEngine) Submit(task func()) { task() }
func (e *mockEngine) Wait()              {}

// outstanding reports the number of live allocations.
func (e *mockEngine) outstanding() int { return len(e.allocs) }
