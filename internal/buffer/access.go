// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package buffer

// Access is the access-mode contract governing a mapped region. It
// determines which staging copies happen at the map and unmap boundaries
// when the underlying storage is not host-visible.
type Access int

const (
	// AccessRead: read-only; contents are copied in on map, nothing is
	// copied out on unmap.
	AccessRead Access = iota
	// AccessWrite: write-only; no copy-in, contents are copied out on
	// unmap.
	AccessWrite
	// AccessReadWrite: copy-in on map and copy-out on unmap.
	AccessReadWrite
	// AccessWriteDiscard: write-only with prior contents explicitly
	// irrelevant; no copy-in, contents are copied out on unmap. The mapped
	// bytes are undefined until written.
	AccessWriteDiscard
)

// String returns a human-readable access mode name.
func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	case AccessReadWrite:
		return "read-write"
	case AccessWriteDiscard:
		return "write-discard"
	default:
		return "unknown"
	}
}

// valid reports whether a is one of the four legal modes.
func (a Access) valid() bool {
	return a >= AccessRead && a <= AccessWriteDiscard
}

// copyIn reports whether mapping with this mode requires the region's
// prior contents to be visible through the mapped bytes.
func (a Access) copyIn() bool {
	return a == AccessRead || a == AccessReadWrite
}

// copyOut reports whether unmapping with this mode must publish the mapped
// bytes back to the buffer.
func (a Access) copyOut() bool {
	return a != AccessRead
}
