package host

import (
	"context"
	"sort"

	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// HandlerFunc answers one boundary message from a guest.
type HandlerFunc func(ctx context.Context, msg entities.Message) entities.Result

// Registry is an immutable table of host-side handlers keyed by message
// kind. Lookups are lock-free; build it once before loading blocks.
type Registry struct {
	handlers map[string]HandlerFunc
	fallback HandlerFunc
	kinds    []string
}

// RegistryOption configures a Registry under construction.
type RegistryOption func(*registryBuilder)

type registryBuilder struct {
	handlers map[string]HandlerFunc
	fallback HandlerFunc
}

// WithHandler registers a handler for one message kind. A later registration
// for the same kind replaces the earlier one.
func WithHandler(kind string, fn HandlerFunc) RegistryOption {
	return func(b *registryBuilder) {
		b.handlers[kind] = fn
	}
}

// WithFallback installs a handler consulted when no kind matches. Without
// one, unmatched kinds get a not_found error outcome.
func WithFallback(fn HandlerFunc) RegistryOption {
	return func(b *registryBuilder) {
		b.fallback = fn
	}
}

// NewRegistry builds an immutable registry from the given options.
func NewRegistry(opts ...RegistryOption) *Registry {
	b := &registryBuilder{handlers: make(map[string]HandlerFunc)}
	for _, opt := range opts {
		opt(b)
	}

	kinds := make([]string, 0, len(b.handlers))
	for kind := range b.handlers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	return &Registry{handlers: b.handlers, fallback: b.fallback, kinds: kinds}
}

// Kinds returns the registered message kinds in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, len(r.kinds))
	copy(out, r.kinds)
	return out
}

// Invoke dispatches one message. A panicking handler becomes an internal
// error outcome rather than unwinding into the wasm call stack.
func (r *Registry) Invoke(ctx context.Context, msg entities.Message) (res entities.Result) {
	defer func() {
		if rec := recover(); rec != nil {
			res = entities.ErrorResult(entities.Errorf(entities.CodeInternal, "host handler panic: %v", rec))
		}
	}()

	if fn, ok := r.handlers[msg.Kind]; ok {
		return fn(ctx, msg)
	}
	if r.fallback != nil {
		return r.fallback(ctx, msg)
	}
	return entities.ErrorResult(entities.Errorf(entities.CodeNotFound, "no handler for kind %q", msg.Kind))
}
