//go:build wasip1

package block

import (
	"github.com/wafer-dev/wafer-sdk/internal/abi"
)

// Exported boundary symbols. Each shim reads its input out of linear memory,
// runs the registered dispatcher, writes the reply into freshly allocated
// linear memory, and returns the packed (ptr, len). Ownership of the reply
// buffer transfers to the host, which consumes it during the same call; the
// guest never frees it. The allocate export lives in internal/abi.

//go:wasmexport describe
func describeExport() uint64 {
	d := registered()
	if d == nil {
		return 0
	}
	data, err := d.Describe()
	if err != nil {
		return 0
	}
	return abi.PtrFromBytes(data)
}

//go:wasmexport handle
func handleExport(ptr, length uint32) uint64 {
	d := registered()
	if d == nil {
		return 0
	}
	input := abi.BytesFromPtr(abi.PackPtrLen(ptr, length))
	return abi.PtrFromBytes(d.Handle(input))
}

//go:wasmexport lifecycle
func lifecycleExport(ptr, length uint32) uint64 {
	d := registered()
	if d == nil {
		return 0
	}
	input := abi.BytesFromPtr(abi.PackPtrLen(ptr, length))
	return abi.PtrFromBytes(d.Lifecycle(input))
}
