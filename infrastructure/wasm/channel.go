//go:build wasip1

// Package wasm binds the Channel port to the real host imports of the
// "wafer" module. Everything crossing the boundary is copied, never shared:
// requests are written into freshly allocated linear memory, replies are
// copied out of the host-referenced region before the call returns.
package wasm

import (
	"encoding/json"
	"fmt"

	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/internal/abi"
	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// Host function imports. Return values carrying data are (ptr, len) packed
// into a uint64, pointer high.
//
//go:wasmimport wafer send
//nolint:revive // snake_case matches the WASM import convention
func host_send(msgPtr, msgLen uint32) uint64

//go:wasmimport wafer capabilities
//nolint:revive
func host_capabilities() uint64

//go:wasmimport wafer is_cancelled
//nolint:revive
func host_is_cancelled() uint32

// Channel talks to the host through the wafer imports.
type Channel struct {
	codec wireformat.Codec
}

// NewChannel creates a channel using the ABI-JSON codec.
func NewChannel() *Channel {
	return &Channel{codec: wireformat.Default()}
}

// Send encodes the message, hands it to the host, and decodes the reply.
// Every failure mode is folded into an Error outcome with its cause intact.
func (c *Channel) Send(msg entities.Message) entities.Result {
	data, err := c.codec.EncodeMessage(msg)
	if err != nil {
		return entities.ErrorResult(entities.NewError(entities.CodeEncodeError, err.Error()))
	}

	ptr, length := abi.WriteBytes(data)
	if ptr == 0 && len(data) > 0 {
		return entities.ErrorResult(entities.NewError(entities.CodeInternal, "request allocation failed"))
	}
	packed := host_send(ptr, length)
	if abi.IsNull(packed) {
		return entities.ErrorResult(entities.NewError(entities.CodeHostError, "host returned null"))
	}

	res, err := c.codec.DecodeResult(abi.BytesFromPtr(packed))
	if err != nil {
		return entities.ErrorResult(entities.NewError(entities.CodeDecodeError, err.Error()))
	}
	return res
}

// Capabilities returns the host-side operations available to this block.
func (c *Channel) Capabilities() ([]string, error) {
	packed := host_capabilities()
	if abi.IsNull(packed) {
		return nil, nil
	}
	var caps []string
	if err := json.Unmarshal(abi.BytesFromPtr(packed), &caps); err != nil {
		return nil, fmt.Errorf("decode capabilities: %w", err)
	}
	return caps, nil
}

// IsCancelled polls the host's cancellation flag for the current call.
func (c *Channel) IsCancelled() bool {
	return host_is_cancelled() != 0
}
