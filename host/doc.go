// Package host runs compiled block modules from the host side. It wraps the
// wazero runtime, exposes the wafer host imports (send, capabilities,
// is_cancelled) backed by a handler registry, and drives the block's
// exported entry points through the same wire contract the guest speaks.
//
// Its primary use is integration testing: compile a block to wasm once and
// exercise it end to end without a production host.
package host
