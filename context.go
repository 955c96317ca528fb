package wafer

import (
	"github.com/wafer-dev/wafer-sdk/domain/ports"
	wasmchan "github.com/wafer-dev/wafer-sdk/infrastructure/wasm"
)

// Context is the block's handle on the host for the duration of one call.
// It wraps a Channel so blocks, service clients, and the logger share one
// injection point; tests swap in a fake channel and never touch real
// sandbox memory.
//
// The context holds no state of its own. Calls are strictly sequential
// within one instance, so it is safe to reuse across calls.
type Context struct {
	ch ports.Channel
}

// NewContext creates a context over the given channel.
func NewContext(ch ports.Channel) *Context {
	return &Context{ch: ch}
}

// DefaultContext returns a context bound to the real host channel. On
// non-wasm builds the channel is an inert stub so blocks compile and unit
// test natively.
func DefaultContext() *Context {
	return NewContext(wasmchan.NewChannel())
}

// Send delivers a message to the named host capability and returns its
// outcome. Failures of the boundary itself (encoding, null reply, malformed
// reply) come back as Error outcomes, never as a crash.
func (c *Context) Send(msg Message) Result {
	return c.ch.Send(msg)
}

// Capabilities lists the host-side operations this block may invoke.
func (c *Context) Capabilities() ([]string, error) {
	return c.ch.Capabilities()
}

// IsCancelled reports whether the host has cancelled the current call.
// Long-running handlers should poll this and wind down promptly with a Drop
// or Error outcome; there is no preemptive cancellation.
func (c *Context) IsCancelled() bool {
	return c.ch.IsCancelled()
}

// Channel returns the underlying channel, for wiring service clients or the
// log handler that take the port directly.
func (c *Context) Channel() ports.Channel {
	return c.ch
}
