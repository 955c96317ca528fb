// Package blocktest provides a test harness for blocks. Tests run the full
// byte-level dispatch path with a fake host channel, so what a test observes
// is exactly what a real host would.
package blocktest

import (
	"testing"

	"github.com/wafer-dev/wafer-sdk/application/block"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/wireformat"
)

// TestCase defines one message handled by the block under test.
type TestCase struct {
	Name     string
	Message  entities.Message
	Channel  *FakeChannel
	Validate func(t *testing.T, res entities.Result)
}

// RunBlockTests runs a suite of test cases against a block. Each case
// encodes its message, pushes it through a Dispatcher, and decodes the
// outcome before handing it to Validate.
func RunBlockTests(t *testing.T, b block.Block, tests []TestCase) {
	t.Helper()
	codec := wireformat.Default()

	for _, tc := range tests {
		t.Run(tc.Name, func(t *testing.T) {
			ch := tc.Channel
			if ch == nil {
				ch = NewFakeChannel()
			}
			d := block.NewDispatcher(b, block.WithChannel(ch))

			input, err := codec.EncodeMessage(tc.Message)
			if err != nil {
				t.Fatalf("encode message: %v", err)
			}

			res, err := codec.DecodeResult(d.Handle(input))
			if err != nil {
				t.Fatalf("decode outcome: %v", err)
			}
			if tc.Validate != nil {
				tc.Validate(t, res)
			}
		})
	}
}

// AssertContinue asserts the outcome passes the message on unchanged.
func AssertContinue(t *testing.T, res entities.Result) {
	t.Helper()
	if res.Action != entities.ActionContinue {
		t.Errorf("expected continue, got %s", res.Action)
	}
}

// AssertRespond asserts the outcome short-circuits with a response.
func AssertRespond(t *testing.T, res entities.Result) {
	t.Helper()
	if res.Action != entities.ActionRespond {
		t.Errorf("expected respond, got %s", res.Action)
		return
	}
	if res.Response == nil {
		t.Error("respond outcome has no response")
	}
}

// AssertDrop asserts the outcome discards the message.
func AssertDrop(t *testing.T, res entities.Result) {
	t.Helper()
	if res.Action != entities.ActionDrop {
		t.Errorf("expected drop, got %s", res.Action)
	}
}

// AssertError asserts the outcome is an error with the given code.
func AssertError(t *testing.T, res entities.Result, code string) {
	t.Helper()
	if res.Action != entities.ActionError {
		t.Errorf("expected error, got %s", res.Action)
		return
	}
	if res.Error == nil {
		t.Error("error outcome has no error detail")
		return
	}
	if res.Error.Code != code {
		t.Errorf("expected error code %q, got %q: %s", code, res.Error.Code, res.Error.Message)
	}
}

// AssertStatus asserts a respond outcome carries the given resp.status meta.
func AssertStatus(t *testing.T, res entities.Result, status string) {
	t.Helper()
	AssertRespond(t, res)
	if res.Response == nil {
		return
	}
	if got := res.Response.GetMeta(entities.MetaRespStatus); got != status {
		t.Errorf("expected status %q, got %q", status, got)
	}
}
