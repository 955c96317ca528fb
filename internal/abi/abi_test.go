package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPtrLen(t *testing.T) {
	packed := PackPtrLen(0xDEADBEEF, 0x10)
	assert.Equal(t, uint64(0xDEADBEEF_00000010), packed)

	ptr, length := UnpackPtrLen(packed)
	assert.Equal(t, uint32(0xDEADBEEF), ptr)
	assert.Equal(t, uint32(16), length)
}

func TestPackPtrLen_RoundTrip(t *testing.T) {
	cases := []struct {
		ptr, length uint32
	}{
		{0, 0},
		{1, 0},
		{0, 1},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0x80000000, 0x7FFFFFFF},
		{42, 4096},
	}
	for _, tc := range cases {
		ptr, length := UnpackPtrLen(PackPtrLen(tc.ptr, tc.length))
		assert.Equal(t, tc.ptr, ptr)
		assert.Equal(t, tc.length, length)
	}
}

func TestPackPtrLen_NoSignExtension(t *testing.T) {
	// Pointers with the high bit set must survive as unsigned bit patterns.
	packed := PackPtrLen(0xFFFF0000, 8)
	ptr, length := UnpackPtrLen(packed)
	assert.Equal(t, uint32(0xFFFF0000), ptr)
	assert.Equal(t, uint32(8), length)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(0))
	assert.False(t, IsNull(PackPtrLen(1, 0)))
	assert.False(t, IsNull(PackPtrLen(0, 1)))
}
