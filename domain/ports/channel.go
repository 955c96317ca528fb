// Package ports defines the interfaces between the SDK's layers. Blocks and
// service clients depend on these, never on the wasm bindings directly, so
// everything above the boundary can be exercised with fakes.
package ports

import "github.com/wafer-dev/wafer-sdk/domain/entities"

// Channel is the guest's view of the host: deliver one message to a named
// host capability and receive its outcome, enumerate the capabilities the
// host offers, and poll for cooperative cancellation.
//
// Implementations never return a Go error from Send; every failure mode is
// folded into an Error outcome so callers handle one result shape.
type Channel interface {
	Send(msg entities.Message) entities.Result
	Capabilities() ([]string, error)
	IsCancelled() bool
}
