package block_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/application/block"
	"github.com/wafer-dev/wafer-sdk/blocktest"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// echoBlock responds to every message with its own payload.
type echoBlock struct{}

func (echoBlock) Info() entities.BlockInfo {
	return entities.BlockInfo{
		Name:         "echo",
		Version:      "1.0.0",
		Interface:    "http",
		InstanceMode: entities.InstanceModePerNode,
	}
}

func (echoBlock) Handle(_ *wafer.Context, msg *entities.Message) entities.Result {
	return wafer.Respond(msg, 200, msg.Data, "text/plain")
}

// panicBlock panics on every message.
type panicBlock struct{ echoBlock }

func (panicBlock) Handle(_ *wafer.Context, _ *entities.Message) entities.Result {
	panic("unreachable state")
}

// lifecycleBlock records lifecycle events and can be told to fail.
type lifecycleBlock struct {
	echoBlock
	seen    []entities.LifecycleType
	failErr error
}

func (b *lifecycleBlock) Lifecycle(_ *wafer.Context, ev entities.LifecycleEvent) error {
	b.seen = append(b.seen, ev.Type)
	return b.failErr
}

// incompleteBlock reports an identity record missing required fields.
type incompleteBlock struct{ echoBlock }

func (incompleteBlock) Info() entities.BlockInfo {
	return entities.BlockInfo{Name: "broken"}
}

func newDispatcher(t *testing.T, b block.Block) (*block.Dispatcher, wireformat.Codec) {
	t.Helper()
	return block.NewDispatcher(b, block.WithChannel(blocktest.NewFakeChannel())), wireformat.Default()
}

func TestDispatcher_Describe(t *testing.T) {
	d, codec := newDispatcher(t, echoBlock{})

	data, err := d.Describe()
	require.NoError(t, err)

	info, err := codec.DecodeBlockInfo(data)
	require.NoError(t, err)
	assert.Equal(t, "echo", info.Name)
	assert.Equal(t, entities.InstanceModePerNode, info.InstanceMode)
	assert.Equal(t, []entities.InstanceMode{entities.InstanceModePerNode}, info.AllowedModes)
}

func TestDispatcher_Describe_IncompleteInfo(t *testing.T) {
	d, _ := newDispatcher(t, incompleteBlock{})

	_, err := d.Describe()
	assert.Error(t, err)
}

func TestDispatcher_Handle(t *testing.T) {
	d, codec := newDispatcher(t, echoBlock{})

	input, err := codec.EncodeMessage(entities.NewMessage("http.request", []byte("ping")))
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Handle(input))
	require.NoError(t, err)
	assert.Equal(t, entities.ActionRespond, res.Action)
	require.NotNil(t, res.Response)
	assert.Equal(t, []byte("ping"), res.Response.Data)
	assert.Equal(t, "200", res.Response.GetMeta(entities.MetaRespStatus))
}

func TestDispatcher_Handle_MalformedInput(t *testing.T) {
	d, codec := newDispatcher(t, echoBlock{})

	res, err := codec.DecodeResult(d.Handle([]byte(`{"kind":`)))
	require.NoError(t, err)
	require.True(t, res.IsError())
	assert.Equal(t, entities.CodeDecodeError, res.Error.Code)
}

func TestDispatcher_Handle_PanicRecovery(t *testing.T) {
	d, codec := newDispatcher(t, panicBlock{})

	input, err := codec.EncodeMessage(entities.NewMessage("http.request", nil))
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Handle(input))
	require.NoError(t, err)
	require.True(t, res.IsError())
	assert.Equal(t, entities.CodeInternal, res.Error.Code)
	assert.Contains(t, res.Error.Message, "block panic")
}

func TestDispatcher_Lifecycle(t *testing.T) {
	b := &lifecycleBlock{}
	d, codec := newDispatcher(t, b)

	input, err := codec.EncodeLifecycleEvent(entities.LifecycleEvent{Type: entities.LifecycleInit})
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Lifecycle(input))
	require.NoError(t, err)
	assert.Equal(t, entities.ActionContinue, res.Action)
	assert.Equal(t, []entities.LifecycleType{entities.LifecycleInit}, b.seen)
}

func TestDispatcher_Lifecycle_Failure(t *testing.T) {
	b := &lifecycleBlock{failErr: entities.NewError(entities.CodeInvalidArgument, "bad init payload")}
	d, codec := newDispatcher(t, b)

	input, err := codec.EncodeLifecycleEvent(entities.LifecycleEvent{Type: entities.LifecycleStart})
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Lifecycle(input))
	require.NoError(t, err)
	require.True(t, res.IsError())
	assert.Equal(t, entities.CodeInvalidArgument, res.Error.Code)
}

func TestDispatcher_Lifecycle_PlainErrorBecomesInternal(t *testing.T) {
	b := &lifecycleBlock{failErr: errors.New("disk full")}
	d, codec := newDispatcher(t, b)

	input, err := codec.EncodeLifecycleEvent(entities.LifecycleEvent{Type: entities.LifecycleStop})
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Lifecycle(input))
	require.NoError(t, err)
	require.True(t, res.IsError())
	assert.Equal(t, entities.CodeInternal, res.Error.Code)
	assert.Equal(t, "disk full", res.Error.Message)
}

func TestDispatcher_Lifecycle_UnknownTypeAcknowledged(t *testing.T) {
	b := &lifecycleBlock{failErr: errors.New("should never run")}
	d, codec := newDispatcher(t, b)

	input, err := codec.EncodeLifecycleEvent(entities.LifecycleEvent{Type: "drain"})
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Lifecycle(input))
	require.NoError(t, err)
	assert.Equal(t, entities.ActionContinue, res.Action)
	assert.Empty(t, b.seen)
}

func TestDispatcher_Lifecycle_NonHandlerBlock(t *testing.T) {
	d, codec := newDispatcher(t, echoBlock{})

	input, err := codec.EncodeLifecycleEvent(entities.LifecycleEvent{Type: entities.LifecycleInit})
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Lifecycle(input))
	require.NoError(t, err)
	assert.Equal(t, entities.ActionContinue, res.Action)
}

func TestDispatcher_Lifecycle_MalformedInput(t *testing.T) {
	d, codec := newDispatcher(t, &lifecycleBlock{})

	res, err := codec.DecodeResult(d.Lifecycle([]byte("not json")))
	require.NoError(t, err)
	require.True(t, res.IsError())
	assert.Equal(t, entities.CodeDecodeError, res.Error.Code)
}

func TestDispatcher_ChannelReachesBlock(t *testing.T) {
	ch := blocktest.NewFakeChannel().ReplyData("svc.config.get", []byte("42"))

	var got string
	b := blockFunc(func(ctx *wafer.Context, msg *entities.Message) entities.Result {
		res := ctx.Send(entities.NewMessage("svc.config.get", nil))
		if res.Response != nil {
			got = string(res.Response.Data)
		}
		return msg.Cont()
	})
	d := block.NewDispatcher(b, block.WithChannel(ch))

	codec := wireformat.Default()
	input, err := codec.EncodeMessage(entities.NewMessage("http.request", nil))
	require.NoError(t, err)

	res, err := codec.DecodeResult(d.Handle(input))
	require.NoError(t, err)
	assert.Equal(t, entities.ActionContinue, res.Action)
	assert.Equal(t, "42", got)
	assert.Equal(t, []string{"svc.config.get"}, ch.SentKinds())
}

// blockFunc adapts a bare handler function into a Block.
type blockFunc func(ctx *wafer.Context, msg *entities.Message) entities.Result

func (blockFunc) Info() entities.BlockInfo {
	return entities.BlockInfo{
		Name:         "func",
		Version:      "0.0.1",
		Interface:    "test",
		InstanceMode: entities.InstanceModePerNode,
	}
}

func (f blockFunc) Handle(ctx *wafer.Context, msg *entities.Message) entities.Result {
	return f(ctx, msg)
}
