package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// instantiateHostModule builds the "wafer" import module: send, capabilities,
// and is_cancelled. Replies are written into guest memory via the guest's
// allocate export and returned as packed (ptr, len), ptr in the high bits.
func (e *Executor) instantiateHostModule(ctx context.Context) error {
	builder := e.runtime.NewHostModuleBuilder("wafer")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) uint64 {
			payload, ok := m.Memory().Read(ptr, length)
			if !ok {
				return 0
			}

			var res entities.Result
			msg, err := e.codec.DecodeMessage(payload)
			if err != nil {
				res = entities.ErrorResult(entities.NewError(entities.CodeDecodeError, err.Error()))
			} else {
				res = e.registry.Invoke(ctx, msg)
			}

			data, err := e.codec.EncodeResult(res)
			if err != nil {
				return 0
			}
			return writeToGuest(ctx, m, data)
		}).
		Export("send")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module) uint64 {
			if len(e.caps) == 0 {
				return 0
			}
			data, err := json.Marshal(e.caps)
			if err != nil {
				return 0
			}
			return writeToGuest(ctx, m, data)
		}).
		Export("capabilities")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module) uint32 {
			if e.cancelled() {
				return 1
			}
			return 0
		}).
		Export("is_cancelled")

	_, err := builder.Instantiate(ctx)
	return err
}

// writeToGuest allocates guest memory, copies data in, and returns the
// packed (ptr, len). Returns 0 on any failure.
func writeToGuest(ctx context.Context, m api.Module, data []byte) uint64 {
	allocate := m.ExportedFunction("allocate")
	if allocate == nil {
		return 0
	}
	results, err := allocate.Call(ctx, uint64(len(data)))
	if err != nil || len(results) == 0 {
		return 0
	}
	ptr := uint32(results[0])
	if ptr == 0 {
		return 0
	}
	if !m.Memory().Write(ptr, data) {
		return 0
	}
	return uint64(ptr)<<32 | uint64(uint32(len(data)))
}

// BlockInstance is one instantiated block module.
type BlockInstance struct {
	module api.Module
	codec  wireformat.Codec
}

// Close releases the module.
func (b *BlockInstance) Close(ctx context.Context) error {
	return b.module.Close(ctx)
}

// Describe calls the block's describe export and decodes its identity
// record.
func (b *BlockInstance) Describe(ctx context.Context) (entities.BlockInfo, error) {
	packed, err := b.callRaw(ctx, "describe", nil)
	if err != nil {
		return entities.BlockInfo{}, err
	}
	data, err := b.readPacked(packed)
	if err != nil {
		return entities.BlockInfo{}, err
	}
	return b.codec.DecodeBlockInfo(data)
}

// Handle sends one message through the block's handle export and decodes
// the outcome.
func (b *BlockInstance) Handle(ctx context.Context, msg entities.Message) (entities.Result, error) {
	input, err := b.codec.EncodeMessage(msg)
	if err != nil {
		return entities.Result{}, err
	}
	packed, err := b.callRaw(ctx, "handle", input)
	if err != nil {
		return entities.Result{}, err
	}
	data, err := b.readPacked(packed)
	if err != nil {
		return entities.Result{}, err
	}
	return b.codec.DecodeResult(data)
}

// Lifecycle sends one lifecycle event through the block's lifecycle export
// and decodes the acknowledgement.
func (b *BlockInstance) Lifecycle(ctx context.Context, event entities.LifecycleEvent) (entities.Result, error) {
	input, err := b.codec.EncodeLifecycleEvent(event)
	if err != nil {
		return entities.Result{}, err
	}
	packed, err := b.callRaw(ctx, "lifecycle", input)
	if err != nil {
		return entities.Result{}, err
	}
	data, err := b.readPacked(packed)
	if err != nil {
		return entities.Result{}, err
	}
	return b.codec.DecodeResult(data)
}

// callRaw invokes a block export, writing input into guest memory first
// when present.
func (b *BlockInstance) callRaw(ctx context.Context, name string, input []byte) (uint64, error) {
	f := b.module.ExportedFunction(name)
	if f == nil {
		return 0, fmt.Errorf("export %q not found", name)
	}

	var results []uint64
	var err error
	if len(input) == 0 {
		results, err = f.Call(ctx)
	} else {
		allocate := b.module.ExportedFunction("allocate")
		if allocate == nil {
			return 0, fmt.Errorf("block does not export allocate")
		}
		allocRes, allocErr := allocate.Call(ctx, uint64(len(input)))
		if allocErr != nil {
			return 0, fmt.Errorf("allocate in block: %w", allocErr)
		}
		if len(allocRes) == 0 || uint32(allocRes[0]) == 0 {
			return 0, fmt.Errorf("block allocate failed for %d bytes", len(input))
		}
		ptr := uint32(allocRes[0])
		if !b.module.Memory().Write(ptr, input) {
			return 0, fmt.Errorf("write input to block memory")
		}
		results, err = f.Call(ctx, uint64(ptr), uint64(len(input)))
	}

	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("export %q returned no value", name)
	}
	return results[0], nil
}

// readPacked copies a packed (ptr, len) reply out of block memory.
func (b *BlockInstance) readPacked(packed uint64) ([]byte, error) {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 && length == 0 {
		return nil, fmt.Errorf("null reply from block")
	}
	data, ok := b.module.Memory().Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("read reply from block memory")
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}
