package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// Executor owns a wazero runtime with the wafer host module instantiated.
// One executor can load many blocks; Close releases everything.
type Executor struct {
	runtime   wazero.Runtime
	registry  *Registry
	codec     wireformat.Codec
	caps      []string
	cancelled func() bool
}

// NewExecutor creates an executor. Without options it has an empty registry,
// no capabilities, and never reports cancellation.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		codec:     wireformat.Default(),
		cancelled: func() bool { return false },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	if err := e.instantiateHostModule(ctx); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("instantiate wafer host module: %w", err)
	}
	return e, nil
}

// Close releases the runtime and every module loaded through it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Load instantiates a compiled block module.
func (e *Executor) Load(ctx context.Context, wasmBytes []byte) (*BlockInstance, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("instantiate block module: %w", err)
	}
	return &BlockInstance{module: mod, codec: e.codec}, nil
}
