// Package block defines the contract a guest block implements and the
// dispatcher that wires it to the exported boundary symbols. The dispatcher
// replaces the code generation a macro would do: it is an explicit adapter
// parameterized by the implementation, so the whole dispatch path runs in
// ordinary tests with a fake channel.
package block

import (
	"sync"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// Block is the capability set every guest block provides.
//
// Info must be pure: no side effects, identical results for repeated calls
// within one instance's lifetime. Handle is the sole place business logic
// runs; it must not block indefinitely and should poll ctx.IsCancelled()
// during long operations, winding down with a Drop or Error outcome when
// the flag is set.
type Block interface {
	Info() entities.BlockInfo
	Handle(ctx *wafer.Context, msg *entities.Message) entities.Result
}

// LifecycleHandler is implemented by blocks that react to init/start/stop
// transitions. Blocks without it acknowledge every event as success. Event
// ordering is imposed by the host and not validated here: an implementation
// reacts to whatever it receives, including repeats and out-of-order
// events, and fails only for conditions it can itself detect as invalid.
type LifecycleHandler interface {
	Lifecycle(ctx *wafer.Context, event entities.LifecycleEvent) error
}

var (
	registerMu        sync.Mutex
	defaultDispatcher *Dispatcher
)

// Register installs the block behind the exported boundary symbols. Block
// authors call this once from main. A second call is ignored.
func Register(b Block, opts ...Option) {
	registerMu.Lock()
	defer registerMu.Unlock()
	if defaultDispatcher != nil {
		return
	}
	defaultDispatcher = NewDispatcher(b, opts...)
}

func registered() *Dispatcher {
	registerMu.Lock()
	defer registerMu.Unlock()
	return defaultDispatcher
}
