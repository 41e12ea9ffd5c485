// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package hal

import "sync"

// Allocator mirrors the installable alloc/free vector the original C
// platform abstraction layer exposes, so a process that wants to track
// or bound this stack's allocations can observe every buffer it hands
// out. Go has no null-on-failure allocator (the runtime panics instead),
// so Alloc/Free here are accounting hooks, not the actual allocation
// path — buffers are still ordinary Go slices.
type Allocator interface {
	Alloc(size int) []byte
	Free(buf []byte)
}

type defaultAllocator struct{}

func (defaultAllocator) Alloc(size int) []byte { return make([]byte, size) }
func (defaultAllocator) Free([]byte)           {}

var (
	allocatorMu sync.RWMutex
	allocator   Allocator = defaultAllocator{}
	oomHandler  func()
)

// SetAllocator installs a process-wide Allocator. Passing nil restores
// the default.
func SetAllocator(a Allocator) {
	allocatorMu.Lock()
	defer allocatorMu.Unlock()
	if a == nil {
		a = defaultAllocator{}
	}
	allocator = a
}

// GetAllocator returns the currently installed Allocator.
func GetAllocator() Allocator {
	allocatorMu.RLock()
	defer allocatorMu.RUnlock()
	return allocator
}

// SetOOMHandler installs a process-wide callback invoked whenever an
// installed Allocator's Alloc returns a nil slice. The default allocator
// never does, since Go's make panics on exhaustion instead of returning
// null; this exists for allocators that wrap a bounded arena.
func SetOOMHandler(f func()) {
	allocatorMu.Lock()
	defer allocatorMu.Unlock()
	oomHandler = f
}

// notifyOOM invokes the installed OOM handler, if any.
func notifyOOM() {
	allocatorMu.RLock()
	h := oomHandler
	allocatorMu.RUnlock()
	if h != nil {
		h()
	}
}

// Alloc allocates size bytes through the installed Allocator, invoking
// the OOM handler and returning nil if it reports exhaustion.
func Alloc(size int) []byte {
	buf := GetAllocator().Alloc(size)
	if buf == nil {
		notifyOOM()
	}
	return buf
}

// Free releases buf through the installed Allocator.
func Free(buf []byte) {
	GetAllocator().Free(buf)
}
