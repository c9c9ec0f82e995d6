// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the host-memory engine for the Lumen framework.
//
// # Overview
//
// The CPU engine serves host and managed storage from an Arrow allocator
// (64-byte-aligned ranges) and simulates device-exclusive storage with
// host bytes that classify as device memory, so staging code paths behave
// exactly as they would against a discrete accelerator.
//
// # Basic Usage
//
//	import (
//	    "github.com/lumen-ml/lumen/buffer"
//	    "github.com/lumen-ml/lumen/engine"
//	    "github.com/lumen-ml/lumen/engine/cpu"
//	)
//
//	func main() {
//	    eng := cpu.New()
//	    defer eng.Close()
//
//	    buf, _ := buffer.New(eng, 1024, engine.StorageDevice)
//	    defer buf.Release()
//	}
package cpu

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/rs/zerolog"

	"github.com/lumen-ml/lumen/internal/engine/cpu"
)

// Engine is the host-memory engine implementation.
type Engine = cpu.Engine

// Option configures an Engine.
type Option = cpu.Option

// New creates a CPU engine.
func New(opts ...Option) *Engine {
	return cpu.New(opts...)
}

// WithLogger installs a structured logger. The default discards
// everything.
func WithLogger(l zerolog.Logger) Option {
	return cpu.WithLogger(l)
}

// WithAllocator overrides the host allocator. The default is the Arrow Go
// allocator.
func WithAllocator(a memory.Allocator) Option {
	return cpu.WithAllocator(a)
}
