// Package wafer is the guest-side SDK for writing WAFER blocks compiled to
// WebAssembly (GOOS=wasip1 GOARCH=wasm). A block implements the Block
// interface from application/block, registers itself in main, and the SDK
// takes care of the boundary: JSON wire encoding, linear-memory transfer,
// and the exported entry points the host invokes.
//
// The guest writes encoded records into linear memory and exchanges
// (ptr, len) pairs with the host, packed into a single uint64 with the
// pointer in the high 32 bits and the length in the low 32 bits.
//
// This package re-exports the data model and provides the Context handed to
// every Handle call, plus response helpers for common patterns.
package wafer

import (
	"github.com/wafer-dev/wafer-sdk/domain/entities"
	"github.com/wafer-dev/wafer-sdk/domain/ports"
)

// Version of the SDK, reported for diagnostics.
const Version = "0.1.0"

// Core data model, re-exported so block authors import one package.
type (
	Message        = entities.Message
	Response       = entities.Response
	WaferError     = entities.WaferError
	Result         = entities.Result
	Action         = entities.Action
	BlockInfo      = entities.BlockInfo
	InstanceMode   = entities.InstanceMode
	LifecycleEvent = entities.LifecycleEvent
	LifecycleType  = entities.LifecycleType
	Channel        = ports.Channel
)

const (
	ActionContinue = entities.ActionContinue
	ActionRespond  = entities.ActionRespond
	ActionDrop     = entities.ActionDrop
	ActionError    = entities.ActionError

	InstanceModePerNode      = entities.InstanceModePerNode
	InstanceModeSingleton    = entities.InstanceModeSingleton
	InstanceModePerChain     = entities.InstanceModePerChain
	InstanceModePerExecution = entities.InstanceModePerExecution

	LifecycleInit  = entities.LifecycleInit
	LifecycleStart = entities.LifecycleStart
	LifecycleStop  = entities.LifecycleStop

	CodeDecodeError      = entities.CodeDecodeError
	CodeEncodeError      = entities.CodeEncodeError
	CodeHostError        = entities.CodeHostError
	CodeNoResponse       = entities.CodeNoResponse
	CodeProtocolError    = entities.CodeProtocolError
	CodeNotFound         = entities.CodeNotFound
	CodePermissionDenied = entities.CodePermissionDenied
	CodeAlreadyExists    = entities.CodeAlreadyExists
	CodeInvalidArgument  = entities.CodeInvalidArgument
	CodeInternal         = entities.CodeInternal
	CodeUnauthenticated  = entities.CodeUnauthenticated

	MetaReqAction       = entities.MetaReqAction
	MetaReqResource     = entities.MetaReqResource
	MetaReqParamPrefix  = entities.MetaReqParamPrefix
	MetaReqQueryPrefix  = entities.MetaReqQueryPrefix
	MetaReqClientIP     = entities.MetaReqClientIP
	MetaReqContentType  = entities.MetaReqContentType
	MetaAuthUserID      = entities.MetaAuthUserID
	MetaAuthUserEmail   = entities.MetaAuthUserEmail
	MetaAuthUserRoles   = entities.MetaAuthUserRoles
	MetaRespStatus      = entities.MetaRespStatus
	MetaRespContentType = entities.MetaRespContentType
	MetaRespHeader      = entities.MetaRespHeaderPrefix
	MetaRespCookie      = entities.MetaRespCookiePrefix
)

// NewMessage creates a message with the given kind and payload.
func NewMessage(kind string, data []byte) Message {
	return entities.NewMessage(kind, data)
}

// NewError creates a structured error with the given code and message.
func NewError(code, message string) *WaferError {
	return entities.NewError(code, message)
}
