// Package abi implements the calling convention of the isolation boundary:
// a (pointer, length) pair packed into one 64-bit word, and the guest-side
// linear-memory management that lets the host read from and write into the
// guest's address space.
package abi

// PtrHighBits is the shift placing the pointer in the high half of the
// packed word; the length occupies the low 32 bits.
const PtrHighBits = 32

// PackPtrLen packs a pointer and length into a single uint64. The container
// is treated as an unsigned bit pattern end to end, so the full 32-bit range
// of both halves round-trips without sign extension.
func PackPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen is the exact inverse of PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	return uint32(packed >> PtrHighBits), uint32(packed)
}

// IsNull reports whether a packed word means "no data". A (0,0) pair from a
// host call is null, not a zero-length buffer at address zero.
func IsNull(packed uint64) bool {
	ptr, length := UnpackPtrLen(packed)
	return ptr == 0 && length == 0
}
