package host

import (
	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// Option configures an Executor.
type Option func(*Executor)

// WithRegistry installs the handler registry answering guest sends.
func WithRegistry(r *Registry) Option {
	return func(e *Executor) {
		e.registry = r
	}
}

// WithCapabilities sets the capability list reported to guests.
func WithCapabilities(caps ...string) Option {
	return func(e *Executor) {
		e.caps = caps
	}
}

// WithCancellation installs the predicate behind the is_cancelled import.
func WithCancellation(fn func() bool) Option {
	return func(e *Executor) {
		e.cancelled = fn
	}
}

// WithCodec overrides the wire codec used on the host side.
func WithCodec(c wireformat.Codec) Option {
	return func(e *Executor) {
		e.codec = c
	}
}
