package blocktest

import (
	"sync"

	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// FakeChannel is an in-memory host channel for tests. It records every
// message a block sends and answers from a table of canned replies keyed by
// message kind.
type FakeChannel struct {
	mu        sync.Mutex
	sent      []entities.Message
	replies   map[string]entities.Result
	replyFunc func(entities.Message) entities.Result
	caps      []string
	cancelled bool
}

// NewFakeChannel creates an empty fake channel. Unmatched sends get a plain
// Continue outcome with no payload.
func NewFakeChannel() *FakeChannel {
	return &FakeChannel{replies: make(map[string]entities.Result)}
}

// Reply registers a canned outcome for messages of the given kind.
func (f *FakeChannel) Reply(kind string, res entities.Result) *FakeChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[kind] = res
	return f
}

// ReplyData registers a Respond outcome carrying a payload for the given
// kind, the shape service replies come in.
func (f *FakeChannel) ReplyData(kind string, data []byte) *FakeChannel {
	return f.Reply(kind, entities.RespondResult(entities.Response{Data: data}))
}

// ReplyFunc installs a catch-all reply function consulted when no canned
// reply matches.
func (f *FakeChannel) ReplyFunc(fn func(entities.Message) entities.Result) *FakeChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replyFunc = fn
	return f
}

// SetCapabilities sets what Capabilities reports.
func (f *FakeChannel) SetCapabilities(caps ...string) *FakeChannel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caps = caps
	return f
}

// Cancel makes IsCancelled report true.
func (f *FakeChannel) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = true
}

// Sent returns a copy of every message sent so far, in order.
func (f *FakeChannel) Sent() []entities.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entities.Message, len(f.sent))
	copy(out, f.sent)
	return out
}

// SentKinds returns the kinds of all sent messages, in order.
func (f *FakeChannel) SentKinds() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	kinds := make([]string, len(f.sent))
	for i, m := range f.sent {
		kinds[i] = m.Kind
	}
	return kinds
}

// Send records the message and returns the matching canned reply.
func (f *FakeChannel) Send(msg entities.Message) entities.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	if res, ok := f.replies[msg.Kind]; ok {
		return res
	}
	if f.replyFunc != nil {
		return f.replyFunc(msg)
	}
	return entities.Result{Action: entities.ActionContinue}
}

// Capabilities returns the configured capability list.
func (f *FakeChannel) Capabilities() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.caps, nil
}

// IsCancelled reports whether Cancel was called.
func (f *FakeChannel) IsCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancelled
}
