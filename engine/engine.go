// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the public API for execution contexts in the
// Lumen framework: the Engine capability consumed by buffers (allocation,
// storage classification, queue-ordered transfers) and the Device it runs
// on.
//
// Implementations live in subpackages:
//   - engine/cpu: host memory with simulated device-exclusive storage
//
// Example:
//
//	eng := cpu.New()
//	defer eng.Close()
//	buf, err := buffer.New(eng, 1024, engine.StorageDevice)
package engine

import (
	"github.com/lumen-ml/lumen/internal/engine"
)

// Type aliases for public API

// Engine is the execution context that buffers are bound to.
type Engine = engine.Engine

// Device describes the hardware an engine executes on.
type Device = engine.Device

// Storage classifies the addressability of an allocated byte range.
type Storage = engine.Storage

// Storage classes.
const (
	StorageUndefined Storage = engine.StorageUndefined
	StorageHost      Storage = engine.StorageHost
	StorageDevice    Storage = engine.StorageDevice
	StorageManaged   Storage = engine.StorageManaged
)

// SyncMode selects blocking behavior for transfers.
type SyncMode = engine.SyncMode

// Transfer synchronization modes.
const (
	Sync  SyncMode = engine.Sync
	Async SyncMode = engine.Async
)
