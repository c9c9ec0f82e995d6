// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

import "sync/atomic"

// refCount tracks strong references to a buffer. A buffer starts with one
// reference held by its creator; it is destroyed when the count reaches
// zero. The count itself is atomic so unrelated holders may retain and
// release concurrently, but this does not make the buffer's operations
// thread-safe.
type refCount struct {
	n atomic.Int32
}

// init establishes the creator's reference. Must be called exactly once,
// before the owning object is shared.
func (rc *refCount) init() {
	rc.n.Store(1)
}

// retain increments the reference count.
func (rc *refCount) retain() {
	rc.n.Add(1)
}

// release decrements the reference count and reports whether it reached
// zero, i.e. whether the holder must destroy the object.
func (rc *refCount) release() bool {
	return rc.n.Add(-1) == 0
}
