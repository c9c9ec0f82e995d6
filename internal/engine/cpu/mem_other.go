// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

//go:build !linux

package cpu

// systemMemory returns the total physical memory in bytes, or 0 when the
// platform offers no cheap way to query it.
func systemMemory() uint64 { return 0 }
