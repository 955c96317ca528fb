package block

import (
	"fmt"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/domain/ports"
	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// Dispatcher adapts one Block to the byte-level boundary protocol. Each
// method decodes its input, invokes the block, and encodes the outcome; a
// malformed input or a panicking block degrades to an encoded Error
// outcome, never a crash or an empty return.
type Dispatcher struct {
	block Block
	ctx   *wafer.Context
	codec wireformat.Codec
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithChannel injects the channel handed to the block, replacing the real
// host binding. Tests use this with a fake.
func WithChannel(ch ports.Channel) Option {
	return func(d *Dispatcher) {
		d.ctx = wafer.NewContext(ch)
	}
}

// WithCodec injects an alternate wire binding.
func WithCodec(c wireformat.Codec) Option {
	return func(d *Dispatcher) {
		d.codec = c
	}
}

// NewDispatcher creates a dispatcher for the given block. Without options it
// binds to the real host channel and the ABI-JSON codec.
func NewDispatcher(b Block, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		block: b,
		ctx:   wafer.DefaultContext(),
		codec: wireformat.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Context returns the context handed to the block on each call.
func (d *Dispatcher) Context() *wafer.Context {
	return d.ctx
}

// Describe returns the encoded identity record. The record is validated
// before publishing; an incomplete one is a programming error in the block.
func (d *Dispatcher) Describe() ([]byte, error) {
	info := d.block.Info()
	if err := info.Validate(); err != nil {
		return nil, err
	}
	return d.codec.EncodeBlockInfo(info)
}

// Handle processes one encoded inbound message and returns an encoded
// outcome. The returned buffer is always a valid outcome record.
func (d *Dispatcher) Handle(input []byte) []byte {
	msg, err := d.codec.DecodeMessage(input)
	if err != nil {
		return d.encodeError(entities.NewError(entities.CodeDecodeError, err.Error()))
	}

	res := d.invoke(&msg)
	return d.encodeResult(res)
}

// Lifecycle processes one encoded lifecycle event and returns an encoded
// acknowledgement: a Continue outcome on success, an Error outcome on
// failure. Unknown event types are acknowledged as success so newer hosts
// can introduce transitions older blocks do not know.
func (d *Dispatcher) Lifecycle(input []byte) []byte {
	event, err := d.codec.DecodeLifecycleEvent(input)
	if err != nil {
		return d.encodeError(entities.NewError(entities.CodeDecodeError, err.Error()))
	}

	lh, ok := d.block.(LifecycleHandler)
	if !ok || !event.Type.IsKnown() {
		return d.encodeAck()
	}

	if err := d.safeLifecycle(lh, event); err != nil {
		return d.encodeError(entities.ToWaferError(err))
	}
	return d.encodeAck()
}

// invoke runs the block's Handle with panic recovery.
func (d *Dispatcher) invoke(msg *entities.Message) (res entities.Result) {
	defer func() {
		if r := recover(); r != nil {
			res = entities.ErrorResult(entities.Errorf(entities.CodeInternal, "block panic: %v", r))
		}
	}()
	return d.block.Handle(d.ctx, msg)
}

func (d *Dispatcher) safeLifecycle(lh LifecycleHandler, event entities.LifecycleEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("block panic: %v", r)
		}
	}()
	return lh.Lifecycle(d.ctx, event)
}

func (d *Dispatcher) encodeAck() []byte {
	return d.encodeResult(entities.Result{Action: entities.ActionContinue})
}

func (d *Dispatcher) encodeError(werr *entities.WaferError) []byte {
	return d.encodeResult(entities.ErrorResult(werr))
}

// encodeResult encodes an outcome, degrading to a best-effort hand-built
// error record if the codec itself fails. It never returns nil.
func (d *Dispatcher) encodeResult(res entities.Result) []byte {
	data, err := d.codec.EncodeResult(res)
	if err == nil {
		return data
	}
	data, err = d.codec.EncodeResult(entities.ErrorResult(
		entities.NewError(entities.CodeEncodeError, err.Error())))
	if err == nil {
		return data
	}
	return []byte(`{"action":"error","error":{"code":"encode_error","message":"outcome could not be serialized","meta":[]}}`)
}
