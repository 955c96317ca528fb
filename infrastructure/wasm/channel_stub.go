//go:build !wasip1

// Package wasm binds the Channel port to the host imports of the "wafer"
// module. This file provides the inert native stub so blocks compile and
// unit test without a sandbox; tests that need host behavior inject a fake
// channel instead.
package wasm

import (
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// Channel stub for native builds.
type Channel struct{}

// NewChannel creates the native stub channel.
func NewChannel() *Channel {
	return &Channel{}
}

// Send is a no-op outside the sandbox: it reports Continue with no payload,
// matching the behavior service clients expect from an absent host.
func (c *Channel) Send(msg entities.Message) entities.Result {
	return entities.Result{Action: entities.ActionContinue}
}

// Capabilities reports no host operations.
func (c *Channel) Capabilities() ([]string, error) {
	return nil, nil
}

// IsCancelled always reports false.
func (c *Channel) IsCancelled() bool {
	return false
}
