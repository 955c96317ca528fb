package entities

import (
	stderrors "errors"
	"fmt"
)

// Error codes produced by the SDK itself. Host services and blocks may add
// their own domain codes on top of these.
const (
	CodeDecodeError      = "decode_error"
	CodeEncodeError      = "encode_error"
	CodeHostError        = "host_error"
	CodeNoResponse       = "no_response"
	CodeProtocolError    = "protocol_error"
	CodeNotFound         = "not_found"
	CodePermissionDenied = "permission_denied"
	CodeAlreadyExists    = "already_exists"
	CodeInvalidArgument  = "invalid_argument"
	CodeInternal         = "internal"
	CodeUnauthenticated  = "unauthenticated"
	CodeUnknown          = "unknown"
)

// WaferError is the structured error exchanged across the boundary: a
// machine-readable code, human-readable text, and auxiliary metadata such as
// an HTTP-like status. Constructed once at the error site and not mutated.
type WaferError struct {
	Code    string
	Message string
	Meta    map[string]string
}

// NewError creates a WaferError with the given code and message.
func NewError(code, message string) *WaferError {
	return &WaferError{Code: code, Message: message}
}

// Errorf creates a WaferError with a formatted message.
func Errorf(code, format string, args ...any) *WaferError {
	return &WaferError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *WaferError) Error() string {
	if e == nil {
		return ""
	}
	if e.Code == "" {
		return e.Message
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithMeta returns the error with the given metadata key set.
func (e *WaferError) WithMeta(key, value string) *WaferError {
	if e.Meta == nil {
		e.Meta = make(map[string]string)
	}
	e.Meta[key] = value
	return e
}

// GetMeta returns the metadata value for key, or the empty string.
func (e *WaferError) GetMeta(key string) string {
	return e.Meta[key]
}

// ToWaferError converts a Go error into a structured WaferError. Errors that
// already are (or wrap) a *WaferError keep their original code and message;
// anything else is categorized as internal.
func ToWaferError(err error) *WaferError {
	if err == nil {
		return nil
	}
	var we *WaferError
	if stderrors.As(err, &we) {
		return we
	}
	return &WaferError{Code: CodeInternal, Message: err.Error()}
}
