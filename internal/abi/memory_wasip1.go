//go:build wasip1

package abi

import (
	"sync"
	"unsafe"
)

// DefaultMaxTotalAllocations caps total live reply-buffer memory. Reply
// buffers are intentionally never freed by the guest (ownership transfers to
// the host, which consumes them synchronously during the same call), so the
// cap bounds the worst case if a host misbehaves and calls never complete.
const DefaultMaxTotalAllocations = 100 * 1024 * 1024

// memoryManager pins every buffer handed across the boundary so the Go GC
// cannot collect or move it while the host may still read it.
var memoryManager = struct {
	sync.Mutex
	ptrs           map[uint32][]byte
	totalAllocated int
	maxAllocated   int
}{
	ptrs:         make(map[uint32][]byte),
	maxAllocated: DefaultMaxTotalAllocations,
}

// Option configures the memory manager.
type Option func()

// WithMaxTotalAllocations sets the allocation cap. Non-positive values are
// ignored.
func WithMaxTotalAllocations(limit int) Option {
	return func() {
		if limit > 0 {
			memoryManager.maxAllocated = limit
		}
	}
}

// Configure applies memory manager options.
func Configure(opts ...Option) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	for _, opt := range opts {
		opt()
	}
}

// allocate reserves size bytes in linear memory for the host to write into.
// The host calls this export before copying a request into the guest. A zero
// return means the request could not be satisfied; a single oversized call
// must not abort the whole module.
//
//go:wasmexport allocate
func allocate(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memoryManager.Lock()
	defer memoryManager.Unlock()

	if memoryManager.totalAllocated+int(size) > memoryManager.maxAllocated {
		return 0
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	memoryManager.ptrs[ptr] = buf
	memoryManager.totalAllocated += int(size)
	return ptr
}

// Stats returns the number of pinned buffers and their total size.
func Stats() (allocations, totalBytes int) {
	memoryManager.Lock()
	defer memoryManager.Unlock()
	return len(memoryManager.ptrs), memoryManager.totalAllocated
}

// WriteBytes copies data into freshly allocated linear memory and returns
// its (ptr, len), or (0, 0) when the allocation cap is hit. Ownership of the
// region transfers to the host.
func WriteBytes(data []byte) (uint32, uint32) {
	if len(data) == 0 {
		return 0, 0
	}
	size := uint32(len(data))
	ptr := allocate(size)
	if ptr == 0 {
		return 0, 0
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), size)
	copy(dst, data)
	return ptr, size
}

// PtrFromBytes is WriteBytes with the pair packed for returning to the host.
func PtrFromBytes(data []byte) uint64 {
	ptr, length := WriteBytes(data)
	if ptr == 0 {
		return 0
	}
	return PackPtrLen(ptr, length)
}

// BytesFromPtr borrows the host-referenced region just long enough to copy
// it out. The host does not guarantee the region stays valid after the call
// returns, so the copy is mandatory. A null pair decodes to nil.
func BytesFromPtr(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	data := make([]byte, length)
	copy(data, src)
	return data
}
