package wireformat

import (
	"encoding/json"
	"fmt"

	"github.com/wafer-dev/wafer-sdk/domain/entities"
)

// Codec converts the in-memory data model to and from transport bytes. The
// ABI-JSON binding is the default; an alternate statically-typed binding can
// be substituted here without touching the layers above.
type Codec interface {
	EncodeMessage(msg entities.Message) ([]byte, error)
	DecodeMessage(data []byte) (entities.Message, error)
	EncodeResult(res entities.Result) ([]byte, error)
	DecodeResult(data []byte) (entities.Result, error)
	EncodeBlockInfo(info entities.BlockInfo) ([]byte, error)
	DecodeBlockInfo(data []byte) (entities.BlockInfo, error)
	EncodeLifecycleEvent(ev entities.LifecycleEvent) ([]byte, error)
	DecodeLifecycleEvent(data []byte) (entities.LifecycleEvent, error)
}

// JSONCodec is the hand-written ABI-JSON binding.
type JSONCodec struct{}

// Default returns the codec used when none is injected.
func Default() Codec {
	return JSONCodec{}
}

// EncodeMessage encodes a message. Output is deterministic: metadata pairs
// are emitted sorted by key.
func (JSONCodec) EncodeMessage(msg entities.Message) ([]byte, error) {
	return json.Marshal(messageWire{
		Kind: msg.Kind,
		Data: payloadToWire(msg.Data),
		Meta: metaToWire(msg.Meta),
	})
}

// DecodeMessage decodes a message, folding duplicate metadata keys so the
// last pair wins.
func (JSONCodec) DecodeMessage(data []byte) (entities.Message, error) {
	var w messageWire
	if err := json.Unmarshal(data, &w); err != nil {
		return entities.Message{}, fmt.Errorf("decode message: %w", err)
	}
	payload, err := payloadFromWire(w.Data)
	if err != nil {
		return entities.Message{}, fmt.Errorf("decode message: %w", err)
	}
	return entities.Message{Kind: w.Kind, Data: payload, Meta: metaFromWire(w.Meta)}, nil
}

// EncodeResult encodes an outcome. Only the field matching the action tag is
// emitted: a conflicting stray response or error is silently discarded so a
// wire record never carries both. A Respond outcome missing its response (or
// an Error outcome missing its error) is itself a protocol bug and degrades
// to an encoded protocol_error outcome.
func (c JSONCodec) EncodeResult(res entities.Result) ([]byte, error) {
	w := resultWire{Action: string(res.Action)}
	switch res.Action {
	case entities.ActionRespond:
		if res.Response == nil {
			return c.EncodeResult(entities.ErrorResult(
				entities.NewError(entities.CodeProtocolError, "respond outcome without response")))
		}
		w.Response = &responseWire{
			Data: payloadToWire(res.Response.Data),
			Meta: metaToWire(res.Response.Meta),
		}
	case entities.ActionError:
		if res.Error == nil {
			return c.EncodeResult(entities.ErrorResult(
				entities.NewError(entities.CodeProtocolError, "error outcome without error")))
		}
		w.Error = &errorWire{
			Code:    res.Error.Code,
			Message: res.Error.Message,
			Meta:    metaToWire(res.Error.Meta),
		}
	case entities.ActionContinue, entities.ActionDrop:
		// Neither payload crosses the wire. The carried message, if any, is
		// deliberately dropped: the ABI-JSON outcome record has no message
		// field.
	default:
		return nil, fmt.Errorf("encode result: unknown action %q", res.Action)
	}
	return json.Marshal(w)
}

// DecodeResult decodes an outcome. An unknown action tag decodes to a bare
// Continue, with any payload belonging to the unrecognized action dropped
// alongside the tag, so newer hosts can introduce tags older guests do not
// understand. A record with a known tag violating the action/payload
// invariant is returned as an Error outcome with code protocol_error rather
// than propagated as-is.
func (JSONCodec) DecodeResult(data []byte) (entities.Result, error) {
	var w resultWire
	if err := json.Unmarshal(data, &w); err != nil {
		return entities.Result{}, fmt.Errorf("decode result: %w", err)
	}

	action := entities.Action(w.Action)
	switch action {
	case entities.ActionContinue, entities.ActionRespond, entities.ActionDrop, entities.ActionError:
	default:
		return entities.Result{Action: entities.ActionContinue}, nil
	}

	res := entities.Result{Action: action}
	if w.Response != nil {
		payload, err := payloadFromWire(w.Response.Data)
		if err != nil {
			return entities.Result{}, fmt.Errorf("decode result: %w", err)
		}
		res.Response = &entities.Response{Data: payload, Meta: metaFromWire(w.Response.Meta)}
	}
	if w.Error != nil {
		res.Error = &entities.WaferError{
			Code:    w.Error.Code,
			Message: w.Error.Message,
			Meta:    metaFromWire(w.Error.Meta),
		}
	}

	if err := res.Validate(); err != nil {
		return entities.ErrorResult(entities.Errorf(entities.CodeProtocolError,
			"invalid outcome record: %v", err)), nil
	}
	return res, nil
}

// EncodeBlockInfo encodes a block identity record. An empty allowed-mode set
// defaults to the preferred instance mode.
func (JSONCodec) EncodeBlockInfo(info entities.BlockInfo) ([]byte, error) {
	allowed := info.Allowed()
	modes := make([]string, len(allowed))
	for i, m := range allowed {
		modes[i] = string(m)
	}
	return json.Marshal(blockInfoWire{
		Name:         info.Name,
		Version:      info.Version,
		Interface:    info.Interface,
		Summary:      info.Summary,
		InstanceMode: string(info.InstanceMode),
		AllowedModes: modes,
	})
}

// DecodeBlockInfo decodes a block identity record. Unknown mode tokens fall
// back to per-node.
func (JSONCodec) DecodeBlockInfo(data []byte) (entities.BlockInfo, error) {
	var w blockInfoWire
	if err := json.Unmarshal(data, &w); err != nil {
		return entities.BlockInfo{}, fmt.Errorf("decode block info: %w", err)
	}
	info := entities.BlockInfo{
		Name:         w.Name,
		Version:      w.Version,
		Interface:    w.Interface,
		Summary:      w.Summary,
		InstanceMode: entities.ParseInstanceMode(w.InstanceMode),
	}
	for _, m := range w.AllowedModes {
		info.AllowedModes = append(info.AllowedModes, entities.ParseInstanceMode(m))
	}
	return info, nil
}

// EncodeLifecycleEvent encodes a lifecycle event.
func (JSONCodec) EncodeLifecycleEvent(ev entities.LifecycleEvent) ([]byte, error) {
	return json.Marshal(lifecycleEventWire{
		Type: string(ev.Type),
		Data: payloadToWire(ev.Data),
	})
}

// DecodeLifecycleEvent decodes a lifecycle event. The type token is kept
// verbatim; callers decide how to treat unknown types.
func (JSONCodec) DecodeLifecycleEvent(data []byte) (entities.LifecycleEvent, error) {
	var w lifecycleEventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return entities.LifecycleEvent{}, fmt.Errorf("decode lifecycle event: %w", err)
	}
	payload, err := payloadFromWire(w.Data)
	if err != nil {
		return entities.LifecycleEvent{}, fmt.Errorf("decode lifecycle event: %w", err)
	}
	return entities.LifecycleEvent{Type: entities.LifecycleType(w.Type), Data: payload}, nil
}
