package entities

import "fmt"

// Action is the four-way outcome tag of processing one message. Every call
// to a block's Handle yields exactly one action; there is no pending state.
type Action string

const (
	// ActionContinue forwards the (possibly mutated) message to the next
	// pipeline stage.
	ActionContinue Action = "continue"

	// ActionRespond stops the pipeline and returns the carried Response to
	// the original caller.
	ActionRespond Action = "respond"

	// ActionDrop stops the pipeline silently; no response is generated.
	ActionDrop Action = "drop"

	// ActionError stops the pipeline and surfaces the carried WaferError as
	// the call's failure.
	ActionError Action = "error"
)

// Result is the outcome of one processing step.
//
// Invariants: Respond carries exactly one Response and no error; Error
// carries exactly one WaferError and no response; Continue and Drop carry
// neither. Continue additionally carries the message to hand to the next
// stage. The wire encoding never includes the message.
type Result struct {
	Action   Action
	Response *Response
	Error    *WaferError
	Message  *Message
}

// ContinueResult builds a Continue outcome carrying msg.
func ContinueResult(msg *Message) Result {
	return Result{Action: ActionContinue, Message: msg}
}

// RespondResult builds a Respond outcome carrying resp.
func RespondResult(resp Response) Result {
	return Result{Action: ActionRespond, Response: &resp}
}

// DropResult builds a Drop outcome.
func DropResult() Result {
	return Result{Action: ActionDrop}
}

// ErrorResult builds an Error outcome carrying err.
func ErrorResult(err *WaferError) Result {
	return Result{Action: ActionError, Error: err}
}

// Validate checks the action/payload invariants. A violation here is a
// protocol bug, not a user error.
func (r Result) Validate() error {
	switch r.Action {
	case ActionRespond:
		if r.Response == nil {
			return fmt.Errorf("respond outcome without response")
		}
		if r.Error != nil {
			return fmt.Errorf("respond outcome with error")
		}
	case ActionError:
		if r.Error == nil {
			return fmt.Errorf("error outcome without error")
		}
		if r.Response != nil {
			return fmt.Errorf("error outcome with response")
		}
	case ActionContinue, ActionDrop:
		if r.Response != nil || r.Error != nil {
			return fmt.Errorf("%s outcome with payload", r.Action)
		}
	default:
		return fmt.Errorf("unknown action %q", r.Action)
	}
	return nil
}

// IsError reports whether the outcome is an error.
func (r Result) IsError() bool {
	return r.Action == ActionError
}

// Cont wraps the message into a Continue outcome. The message value is moved
// into the result; callers should not keep using it.
func (m *Message) Cont() Result {
	return ContinueResult(m)
}

// RespondWith wraps a response into a Respond outcome.
func (m *Message) RespondWith(resp Response) Result {
	r := RespondResult(resp)
	r.Message = m
	return r
}

// DropMsg discards the message with a Drop outcome.
func (m *Message) DropMsg() Result {
	r := DropResult()
	r.Message = m
	return r
}

// Err wraps an error into an Error outcome.
func (m *Message) Err(err *WaferError) Result {
	r := ErrorResult(err)
	r.Message = m
	return r
}
