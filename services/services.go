// Package services provides the stateless clients for the host-side
// services a block may call: config, storage, database, network, and
// crypto. Each client builds a svc.<name>.<op> message, performs one
// boundary call through the block's Context, and decodes the reply.
// Structured errors from the host are surfaced with their original code and
// message intact.
package services

import (
	"encoding/json"

	wafer "github.com/wafer-dev/wafer-sdk"
	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// call performs one boundary call and normalizes the outcome: an Error
// action becomes the host's error, a missing reply payload becomes
// no_response. Drop and Continue without a response also map to no_response
// since every service operation expects a reply.
func call(ctx *wafer.Context, msg entities.Message) (*entities.Response, *entities.WaferError) {
	res := ctx.Send(msg)
	if res.Action == entities.ActionError {
		if res.Error != nil {
			return nil, res.Error
		}
		return nil, entities.NewError(entities.CodeUnknown, "host call failed")
	}
	if res.Response == nil {
		return nil, entities.NewError(entities.CodeNoResponse, "host returned no response data")
	}
	return res.Response, nil
}

// callAck performs a boundary call where only success matters.
func callAck(ctx *wafer.Context, msg entities.Message) *entities.WaferError {
	res := ctx.Send(msg)
	if res.Action == entities.ActionError {
		if res.Error != nil {
			return res.Error
		}
		return entities.NewError(entities.CodeUnknown, "host call failed")
	}
	return nil
}

// decodeInto unmarshals a reply payload into v, reporting decode_error on
// malformed host data.
func decodeInto(resp *entities.Response, v any) *entities.WaferError {
	if err := json.Unmarshal(resp.Data, v); err != nil {
		return entities.NewError(entities.CodeDecodeError, err.Error())
	}
	return nil
}
